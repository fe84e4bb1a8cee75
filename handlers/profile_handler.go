package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"markify/database"
	"markify/notifications"
)

type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func GetProfile(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	user, err := database.GetUser(ctx, identity.UID)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		log.Printf("🔥 Failed to load user %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load profile"})
	}
	return c.JSON(userResponse(user))
}

// UpdateName renames the caller's own account. The new name must still be
// unique since it is the login key.
func UpdateName(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req UpdateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	count, err := database.Users().CountDocuments(ctx, bson.M{"name": req.Name, "_id": bson.M{"$ne": identity.UID}})
	if err != nil {
		log.Printf("🔥 Failed to check existing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update name"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Name already taken"})
	}

	result, err := database.Users().UpdateByID(ctx, identity.UID, bson.M{"$set": bson.M{"name": req.Name}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Name already taken"})
		}
		log.Printf("🔥 Failed to update name for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update name"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "Name updated successfully"})
}

// ChangePassword requires the caller's current password before storing the
// new hash.
func ChangePassword(c *fiber.Ctx) error {
	identity := currentIdentity(c)

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), storeTimeout)
	defer cancel()

	user, err := database.GetUser(ctx, identity.UID)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if err != nil {
		log.Printf("🔥 Failed to load user %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if _, err := database.Users().UpdateByID(ctx, identity.UID, bson.M{"$set": bson.M{"password_hash": string(hashed)}}); err != nil {
		log.Printf("🔥 Failed to update password for %s: %v", identity.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}

	if user.Email != "" {
		go notifications.SendEmail(user.Name, user.Email, "Your Markify password was changed",
			"<p>Your password was just changed. If this wasn't you, contact your administrator.</p>")
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
