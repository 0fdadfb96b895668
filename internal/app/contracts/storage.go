package contracts

import (
	"context"
	"io"
)

// Storage is the blob store holding raw image bytes. The bucket is fixed at
// construction; objectName is the opaque locator persisted on the Image row.
type Storage interface {
	UploadObject(ctx context.Context, objectName string, content []byte, contentType string) error
	GetObject(ctx context.Context, objectName string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, objectName string) error
}
