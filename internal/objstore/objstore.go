package objstore

import (
	"context"
	"fmt"
	"strings"
)

// ObjectStore uploads report media to the hosted photos bucket.
// Upload is an upsert: re-uploading the same object name overwrites it.
// The returned URL is the public retrieval URL of the object.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

// PublicURL derives the public retrieval URL for an object. Objects in the
// photos bucket are publicly readable, so no signature or expiry is involved.
func PublicURL(baseURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimRight(baseURL, "/"), bucket, objectName)
}
