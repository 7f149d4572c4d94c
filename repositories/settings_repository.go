package repositories

import (
	"context"

	"rentatool-backend/apperrors"
	"rentatool-backend/mapping"
	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsDocID keys the singleton settings document.
const SettingsDocID = "site-settings"

type SettingsRepository struct {
	db *mongo.Database
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) settings() *mongo.Collection {
	return r.db.Collection("settings")
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var doc bson.M
	if err := r.settings().FindOne(ctx, bson.M{"_id": SettingsDocID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch settings", err)
	}

	settings := mapping.Settings(doc)
	return &settings, nil
}

// Upsert creates the record with createdAt = updatedAt = now when absent,
// otherwise updates the fields and bumps updatedAt, leaving createdAt alone.
func (r *SettingsRepository) Upsert(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	if in.SMTPUserEmail != "" && in.SMTPUserEmail == in.EmailReceiver {
		return nil, apperrors.ValidationField("email_receiver", "sender and receiver addresses must differ")
	}

	now := nowUTC()
	update := bson.M{
		"$set": bson.M{
			"company_name":        in.CompanyName,
			"owner_name":          in.OwnerName,
			"company_address":     in.CompanyAddress,
			"company_phone":       in.CompanyPhone,
			"company_nip":         in.CompanyNIP,
			"smtp_user_emailFrom": in.SMTPUserEmail,
			"email_receiver":      in.EmailReceiver,
			"h1_title":            in.H1Title,
			"motto_description":   in.MottoDescription,
			"updatedAt":           now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc bson.M
	if err := r.settings().FindOneAndUpdate(ctx, bson.M{"_id": SettingsDocID}, update, opts).Decode(&doc); err != nil {
		return nil, apperrors.Internal("failed to save settings", err)
	}

	settings := mapping.Settings(doc)
	return &settings, nil
}
