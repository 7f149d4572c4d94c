package repositories

import (
	"context"
	"strings"

	"rentatool-backend/apperrors"
	"rentatool-backend/mapping"
	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc bson.M
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.db.Collection("users").FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch user", err)
	}

	user := mapping.User(doc)
	return &user, nil
}
