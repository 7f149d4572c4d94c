package repositories

import (
	"context"

	"rentatool-backend/apperrors"
	"rentatool-backend/mapping"
	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BannerRepository is flat CRUD, no joins and no deletion guards.
type BannerRepository struct {
	db *mongo.Database
}

func NewBannerRepository(db *mongo.Database) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) banners() *mongo.Collection {
	return r.db.Collection("banners")
}

func (r *BannerRepository) List(ctx context.Context) ([]models.Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.banners().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch banners", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Internal("failed to decode banners", err)
	}

	banners := make([]models.Banner, 0, len(docs))
	for _, doc := range docs {
		banners = append(banners, mapping.Banner(doc))
	}
	return banners, nil
}

func (r *BannerRepository) GetByID(ctx context.Context, id string) (*models.Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("banner")
	}

	var doc bson.M
	if err := r.banners().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("banner")
		}
		return nil, apperrors.Internal("failed to fetch banner", err)
	}

	banner := mapping.Banner(doc)
	return &banner, nil
}

func (r *BannerRepository) Create(ctx context.Context, in BannerInput) (*models.Banner, error) {
	if in.Title == "" {
		return nil, apperrors.ValidationField("title", "title is required")
	}
	if in.ImageURL == "" {
		return nil, apperrors.ValidationField("imageUrl", "image is required")
	}

	now := nowUTC()
	doc := bson.M{
		"_id":       primitive.NewObjectID(),
		"title":     in.Title,
		"imageUrl":  in.ImageURL,
		"createdAt": now,
		"updatedAt": now,
	}
	setOptional(doc, "description", in.Description)
	setOptional(doc, "ctaText", in.CtaText)
	setOptional(doc, "ctaLink", in.CtaLink)

	if _, err := r.banners().InsertOne(ctx, doc); err != nil {
		return nil, apperrors.Internal("failed to create banner", err)
	}

	banner := mapping.Banner(doc)
	return &banner, nil
}

func (r *BannerRepository) Update(ctx context.Context, id string, in BannerInput) (*models.Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("banner")
	}
	if in.Title == "" {
		return nil, apperrors.ValidationField("title", "title is required")
	}
	if in.ImageURL == "" {
		return nil, apperrors.ValidationField("imageUrl", "image is required")
	}

	set := bson.M{
		"title":     in.Title,
		"imageUrl":  in.ImageURL,
		"updatedAt": nowUTC(),
	}
	unset := bson.M{}
	applyOptional(set, unset, "description", in.Description)
	applyOptional(set, unset, "ctaText", in.CtaText)
	applyOptional(set, unset, "ctaLink", in.CtaLink)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := r.banners().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, apperrors.Internal("failed to update banner", err)
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.NotFound("banner")
	}

	return r.GetByID(ctx, id)
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("banner")
	}

	result, err := r.banners().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Internal("failed to delete banner", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("banner")
	}
	return nil
}

func setOptional(doc bson.M, key string, value *string) {
	if value != nil {
		doc[key] = *value
	}
}

// applyOptional sets a provided optional field and unsets an omitted one, so
// the stored document keeps the absent-vs-empty distinction banners rely on.
func applyOptional(set, unset bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	} else {
		unset[key] = ""
	}
}
