package audio

import (
	"context"
	"log"
)

// Store persists synthesized replies and returns a URL the caller can
// fetch them from.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Select picks the storage variant once at startup: S3 when a bucket is
// configured, the local directory otherwise.
func Select(bucket, region, accessKey, secretKey, publicURL, localDir string) Store {
	if bucket != "" {
		return NewS3Store(bucket, region, accessKey, secretKey, publicURL)
	}

	log.Println("audio: no bucket configured, storing replies on local disk")
	return NewLocalStore(localDir, publicURL)
}
