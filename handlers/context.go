package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Identity is the authenticated caller pulled out of the JWT claims.
type Identity struct {
	UID  string
	Name string
	Role string
}

func currentIdentity(c *fiber.Ctx) Identity {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	uid, _ := claims["user_id"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return Identity{UID: uid, Name: name, Role: role}
}
