package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage defines the object storage operations used for exercise demo media.
type MediaStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT of
	// the object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL for a GET of the object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// ExerciseMediaKey builds a fresh object key for an exercise's demo video.
// Every upload gets a new key so a stale presigned URL never overwrites a newer video.
func ExerciseMediaKey(trainerID, exerciseID primitive.ObjectID) string {
	return fmt.Sprintf("exercises/%s/%s/%s", trainerID.Hex(), exerciseID.Hex(), uuid.NewString())
}
