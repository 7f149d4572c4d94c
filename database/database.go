package database

import (
	"context"
	"log"
	"os"
	"time"

	"rentatool-backend/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Connect opens the Mongo client and returns a handle to the application
// database. The database name defaults to "rentatool" unless MONGODB_DB is set.
func Connect() (*mongo.Client, *mongo.Database, error) {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "rentatool"
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on category name and slug are the authoritative uniqueness guard;
// the application-level checks only exist for friendly error messages.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	categoryIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "pl", Strength: 2}),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "parentId", Value: 1}}},
	}
	if _, err := db.Collection("categories").Indexes().CreateMany(ctx, categoryIndexes); err != nil {
		return err
	}

	serviceIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		{Keys: bson.D{{Key: "available", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}
	if _, err := db.Collection("services").Indexes().CreateMany(ctx, serviceIndexes); err != nil {
		return err
	}

	if _, err := db.Collection("images").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "serviceId", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return nil
}

// SeedDefaultAdmin creates the admin account the console logs in with, if it
// does not exist yet.
func SeedDefaultAdmin(ctx context.Context, db *mongo.Database) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@rentatool.pl"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	users := db.Collection("users")
	count, err := users.CountDocuments(ctx, bson.M{"email": adminEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = users.InsertOne(ctx, bson.M{
		"email":     adminEmail,
		"password":  string(hashedPassword),
		"name":      "Administrator",
		"role":      "admin",
		"createdAt": now,
		"updatedAt": now,
	})
	if err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}

// SeedDefaultSettings upserts an empty settings record so both apps always
// have site copy to render. Existing values are never overwritten.
func SeedDefaultSettings(ctx context.Context, db *mongo.Database) error {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"company_name":        "",
		"owner_name":          "",
		"company_address":     "",
		"company_phone":       "",
		"company_nip":         "",
		"smtp_user_emailFrom": "",
		"email_receiver":      "",
		"h1_title":            "",
		"motto_description":   "",
		"createdAt":           now,
		"updatedAt":           now,
	}}
	_, err := db.Collection("settings").UpdateOne(
		ctx,
		bson.M{"_id": repositories.SettingsDocID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}
