package repositories

import (
	"context"
	"log"

	"rentatool-backend/apperrors"
	"rentatool-backend/firebase"
	"rentatool-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// attachImages creates one image document per URL referencing the service.
// Purely additive; empty URL entries are skipped.
func (r *ServiceRepository) attachImages(ctx context.Context, serviceID primitive.ObjectID, urls []string) error {
	docs := make([]interface{}, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		docs = append(docs, bson.M{
			"_id":       primitive.NewObjectID(),
			"serviceId": serviceID,
			"url":       u,
			"createdAt": nowUTC(),
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := r.images().InsertMany(ctx, docs); err != nil {
		return apperrors.Internal("failed to attach service images", err)
	}
	return nil
}

// purgeRemoteAssets best-effort deletes the remote object behind each image
// URL. Failures are logged and never block local deletion: orphaned remote
// assets are a storage-cost issue, not a correctness issue. URLs the object
// path cannot be derived from are skipped.
func purgeRemoteAssets(storage firebase.StorageClient, images []models.Image) {
	for _, img := range images {
		objectPath, ok := storage.ObjectPathFromURL(img.URL)
		if !ok {
			log.Printf("Skipping remote deletion for unrecognized image URL %s", img.URL)
			continue
		}
		if err := storage.DeleteFile(objectPath); err != nil {
			log.Printf("Failed to delete remote image %s: %v", objectPath, err)
		}
	}
}
