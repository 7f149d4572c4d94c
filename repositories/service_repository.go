package repositories

import (
	"context"

	"rentatool-backend/apperrors"
	"rentatool-backend/firebase"
	"rentatool-backend/mapping"
	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceRepository assembles the denormalized service read model: each
// service joined to its images and its category via aggregation.
type ServiceRepository struct {
	db      *mongo.Database
	storage firebase.StorageClient
}

func NewServiceRepository(db *mongo.Database, storage firebase.StorageClient) *ServiceRepository {
	return &ServiceRepository{db: db, storage: storage}
}

func (r *ServiceRepository) services() *mongo.Collection {
	return r.db.Collection("services")
}

func (r *ServiceRepository) images() *mongo.Collection {
	return r.db.Collection("images")
}

// joinStages are the aggregation stages shared by every service read:
// images joined on serviceId, the category joined on categoryId and unwound
// to a single optional subdocument.
func joinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "images",
			"localField":   "_id",
			"foreignField": "serviceId",
			"as":           "images",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "categoryId",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

func (r *ServiceRepository) aggregate(ctx context.Context, pipeline []bson.D) ([]models.Service, error) {
	cursor, err := r.services().Aggregate(ctx, pipeline, options.Aggregate().SetCollation(nameCollation))
	if err != nil {
		return nil, apperrors.Internal("failed to fetch services", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Internal("failed to decode services", err)
	}

	services := make([]models.Service, 0, len(docs))
	for _, doc := range docs {
		services = append(services, mapping.Service(doc))
	}
	return services, nil
}

func (r *ServiceRepository) List(ctx context.Context, opts ListServicesOptions) ([]models.Service, error) {
	match := bson.M{}
	if opts.AvailableOnly {
		match["available"] = true
	}
	if opts.CategoryID != "" {
		oid, err := primitive.ObjectIDFromHex(opts.CategoryID)
		if err != nil {
			return []models.Service{}, nil
		}
		match["categoryId"] = oid
	}

	pipeline := []bson.D{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, joinStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}})
	return r.aggregate(ctx, pipeline)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("service")
	}

	pipeline := []bson.D{{{Key: "$match", Value: bson.M{"_id": oid}}}}
	pipeline = append(pipeline, joinStages()...)

	services, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, apperrors.NotFound("service")
	}
	return &services[0], nil
}

func (r *ServiceRepository) ListByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Service, error) {
	var doc bson.M
	err := r.db.Collection("categories").FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Unknown category is a valid, empty result for public browsing.
			return nil, []models.Service{}, nil
		}
		return nil, nil, apperrors.Internal("failed to fetch category", err)
	}
	category := mapping.Category(doc)

	services, err := r.List(ctx, ListServicesOptions{AvailableOnly: true, CategoryID: category.ID})
	if err != nil {
		return nil, nil, err
	}
	return &category, services, nil
}

func (r *ServiceRepository) Create(ctx context.Context, in ServiceInput, imageURLs []string) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	categoryOID, err := r.requireCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	id := primitive.NewObjectID()
	doc := bson.M{
		"_id":          id,
		"name":         in.Name,
		"description":  in.Description,
		"rentalPrice":  in.RentalPrice,
		"deposit":      in.Deposit,
		"quantity":     in.Quantity,
		"rentalPeriod": in.RentalPeriod,
		"condition":    in.Condition,
		"available":    in.Available,
		"categoryId":   categoryOID,
		"createdAt":    now,
		"updatedAt":    now,
		"deletedAt":    nil,
		"deletedBy":    nil,
	}

	if _, err := r.services().InsertOne(ctx, doc); err != nil {
		return nil, apperrors.Internal("failed to create service", err)
	}

	// Second, non-atomic step: a crash here leaves a service with zero
	// images, which is degraded but recoverable by re-adding images.
	if err := r.attachImages(ctx, id, imageURLs); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id.Hex())
}

func (r *ServiceRepository) Update(ctx context.Context, id string, in ServiceInput) (*models.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("service")
	}

	var existing bson.M
	if err := r.services().FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("service")
		}
		return nil, apperrors.Internal("failed to fetch service", err)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	// A blank categoryId keeps the existing reference instead of nulling it.
	var categoryOID interface{}
	if in.CategoryID == "" {
		categoryOID = existing["categoryId"]
	} else {
		categoryOID, err = r.requireCategory(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	update := bson.M{"$set": bson.M{
		"name":         in.Name,
		"description":  in.Description,
		"rentalPrice":  in.RentalPrice,
		"deposit":      in.Deposit,
		"quantity":     in.Quantity,
		"rentalPeriod": in.RentalPeriod,
		"condition":    in.Condition,
		"available":    in.Available,
		"categoryId":   categoryOID,
		"updatedAt":    nowUTC(),
	}}
	if _, err := r.services().UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return nil, apperrors.Internal("failed to update service", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a service and its images. Remote assets are purged first,
// best-effort; then the service document, then the image documents. A crash
// mid-sequence leaves orphaned image documents rather than a service
// referencing missing images.
func (r *ServiceRepository) Delete(ctx context.Context, id string) (*models.Service, error) {
	service, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oid, _ := primitive.ObjectIDFromHex(service.ID)

	purgeRemoteAssets(r.storage, service.Images)

	if _, err := r.services().DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return nil, apperrors.Internal("failed to delete service", err)
	}
	if _, err := r.images().DeleteMany(ctx, bson.M{"serviceId": oid}); err != nil {
		return nil, apperrors.Internal("failed to delete service images", err)
	}

	return service, nil
}

func (r *ServiceRepository) requireCategory(ctx context.Context, categoryID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return primitive.NilObjectID, apperrors.ValidationField("categoryId", "category does not exist")
	}
	count, err := r.db.Collection("categories").CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return primitive.NilObjectID, apperrors.Internal("failed to check category", err)
	}
	if count == 0 {
		return primitive.NilObjectID, apperrors.ValidationField("categoryId", "category does not exist")
	}
	return oid, nil
}
