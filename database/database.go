package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	config "markify/configs"
	"markify/models"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func ConnectDB() {
	uri := config.ConfigOr("MONGO_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("🔥 Failed to ping database: %v", err)
	}

	DB = Client.Database(config.ConfigOr("MONGO_DB", "markify"))
	fmt.Println("✅ Database connected successfully")
}

func Users() *mongo.Collection    { return DB.Collection("users") }
func Subjects() *mongo.Collection { return DB.Collection("subjects") }
func Exams() *mongo.Collection    { return DB.Collection("exams") }
func Marks() *mongo.Collection    { return DB.Collection("marks") }

// EnsureIndexes provisions the lookup indexes. The unique index on users.name
// backs the one-account-per-name rule enforced at signup and rename.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("🔥 Failed to create users index: %v", err)
	}

	_, err = Exams().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "student_uid", Value: 1}, {Key: "type", Value: 1}},
	})
	if err != nil {
		log.Fatalf("🔥 Failed to create exams index: %v", err)
	}

	_, err = Marks().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "exam_id", Value: 1}, {Key: "uid", Value: 1}},
	})
	if err != nil {
		log.Fatalf("🔥 Failed to create marks index: %v", err)
	}
	fmt.Println("✅ Database indexes ensured")
}

func SeedAdmin() {
	adminName := config.Config("ADMIN_NAME")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminName == "" || adminPassword == "" {
		log.Println("⚠️ ADMIN_NAME/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	count, err := Users().CountDocuments(ctx, bson.M{"name": adminName})
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	admin := models.User{
		ID:           NewDocID(),
		Name:         adminName,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if _, err := Users().InsertOne(ctx, admin); err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}
	log.Printf("✅ Seeded admin account %q", adminName)
}
