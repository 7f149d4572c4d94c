package repositories

import (
	"context"
	"strings"

	"rentatool-backend/apperrors"
	"rentatool-backend/mapping"
	"rentatool-backend/models"
	"rentatool-backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nameCollation matches category names case-insensitively under Polish
// rules. The unique index on name uses the same collation, so the friendly
// pre-check and the authoritative index guard agree.
var nameCollation = &options.Collation{Locale: "pl", Strength: 2}

type CategoryRepository struct {
	db *mongo.Database
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) categories() *mongo.Collection {
	return r.db.Collection("categories")
}

func (r *CategoryRepository) List(ctx context.Context, sort CategorySort) ([]models.Category, error) {
	opts := options.Find()
	if sort == CategorySortNewest {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "name", Value: 1}}).SetCollation(nameCollation)
	}

	cursor, err := r.categories().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch categories", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Internal("failed to decode categories", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, mapping.Category(doc))
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("category")
	}

	var doc bson.M
	if err := r.categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("category")
		}
		return nil, apperrors.Internal("failed to fetch category", err)
	}

	cat := mapping.Category(doc)
	return &cat, nil
}

// FindByName matches case-insensitively; returns (nil, nil) when absent.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"name": strings.TrimSpace(name)}, options.FindOne().SetCollation(nameCollation))
}

// FindBySlug matches exactly; returns (nil, nil) when absent.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Category, error) {
	var doc bson.M
	if err := r.categories().FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to fetch category", err)
	}
	cat := mapping.Category(doc)
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string, parentID *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationField("name", "name is required")
	}
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperrors.ValidationField("name", "name must contain at least one usable character")
	}

	parentOID, err := r.resolveParent(ctx, parentID, nil)
	if err != nil {
		return nil, err
	}

	if err := r.checkConflicts(ctx, name, slug, nil); err != nil {
		return nil, err
	}

	now := nowUTC()
	doc := bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      name,
		"slug":      slug,
		"parentId":  parentOID,
		"createdAt": now,
		"updatedAt": now,
		"deletedAt": nil,
	}

	if _, err := r.categories().InsertOne(ctx, doc); err != nil {
		// The unique indexes are the authoritative guard; a lost race past
		// the pre-check surfaces here as a duplicate key.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("a category with this name or slug already exists")
		}
		return nil, apperrors.Internal("failed to create category", err)
	}

	cat := mapping.Category(doc)
	return &cat, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id, name string, parentID *string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("category")
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationField("name", "name is required")
	}
	slug := utils.Slugify(name)
	if slug == "" {
		return nil, apperrors.ValidationField("name", "name must contain at least one usable character")
	}

	parentOID, err := r.resolveParent(ctx, parentID, &oid)
	if err != nil {
		return nil, err
	}

	if err := r.checkConflicts(ctx, name, slug, &oid); err != nil {
		return nil, err
	}

	// Name and slug regenerate together in one update.
	update := bson.M{"$set": bson.M{
		"name":      name,
		"slug":      slug,
		"parentId":  parentOID,
		"updatedAt": nowUTC(),
	}}
	if _, err := r.categories().UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("a category with this name or slug already exists")
		}
		return nil, apperrors.Internal("failed to update category", err)
	}

	return r.GetByID(ctx, id)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("category")
	}

	// Deletion is blocked, never cascaded.
	serviceCount, err := r.db.Collection("services").CountDocuments(ctx, bson.M{"categoryId": oid})
	if err != nil {
		return apperrors.Internal("failed to check category usage", err)
	}
	if serviceCount > 0 {
		return apperrors.Conflict("cannot delete a category that is in use by services")
	}

	childCount, err := r.categories().CountDocuments(ctx, bson.M{"parentId": oid})
	if err != nil {
		return apperrors.Internal("failed to check category children", err)
	}
	if childCount > 0 {
		return apperrors.Conflict("cannot delete a category with child categories")
	}

	result, err := r.categories().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Internal("failed to delete category", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("category")
	}
	return nil
}

// resolveParent validates a prospective parent reference: it must exist, and
// when self is given (an update), the parent chain must not lead back to
// self, which would create a cycle.
func (r *CategoryRepository) resolveParent(ctx context.Context, parentID *string, self *primitive.ObjectID) (interface{}, error) {
	if parentID == nil || *parentID == "" {
		return nil, nil
	}

	parentOID, err := primitive.ObjectIDFromHex(*parentID)
	if err != nil {
		return nil, apperrors.ValidationField("parentId", "parent category does not exist")
	}
	if self != nil && parentOID == *self {
		return nil, apperrors.ValidationField("parentId", "a category cannot be its own parent")
	}

	count, err := r.categories().CountDocuments(ctx, bson.M{"_id": parentOID})
	if err != nil {
		return nil, apperrors.Internal("failed to check parent category", err)
	}
	if count == 0 {
		return nil, apperrors.ValidationField("parentId", "parent category does not exist")
	}

	if self != nil {
		if err := r.rejectCycle(ctx, parentOID, *self); err != nil {
			return nil, err
		}
	}
	return parentOID, nil
}

// rejectCycle walks the ancestor chain starting at parent and fails when it
// reaches self. The visited set terminates the walk even on a corrupt chain.
func (r *CategoryRepository) rejectCycle(ctx context.Context, parent, self primitive.ObjectID) error {
	visited := map[primitive.ObjectID]bool{}
	current := parent
	for {
		if current == self {
			return apperrors.ValidationField("parentId", "a category cannot be moved under its own descendant")
		}
		if visited[current] {
			return nil
		}
		visited[current] = true

		var doc bson.M
		err := r.categories().FindOne(ctx, bson.M{"_id": current}).Decode(&doc)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil
			}
			return apperrors.Internal("failed to walk category ancestors", err)
		}
		next, ok := doc["parentId"].(primitive.ObjectID)
		if !ok {
			return nil
		}
		current = next
	}
}

// checkConflicts is the friendly-error uniqueness pre-check, built on the
// same collation-backed lookups the interface exposes. The record being
// updated, if any, does not collide with itself.
func (r *CategoryRepository) checkConflicts(ctx context.Context, name, slug string, exclude *primitive.ObjectID) error {
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && !isExcluded(existing, exclude) {
		return apperrors.Conflict("a category with this name already exists")
	}

	existing, err = r.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && !isExcluded(existing, exclude) {
		return apperrors.Conflict("a category with this slug already exists")
	}
	return nil
}

func isExcluded(cat *models.Category, exclude *primitive.ObjectID) bool {
	return exclude != nil && cat.ID == exclude.Hex()
}
