package objectstore

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/edvault/edvault/conf"
)

// Store is the read-only interface to the private bucket that holds the
// purchasable documents. Implementations hold service-level credentials;
// callers never see them, every read goes through the document gate.
type Store interface {
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

// NewStore builds the store configured for this site.
func NewStore(config *conf.Configuration) (Store, error) {
	switch config.Storage.Provider {
	case "s3":
		return NewS3Provider(context.Background(), config.Storage)
	case "memory", "":
		return NewMemoryProvider(), nil
	default:
		return nil, errors.Errorf("Unknown object store provider '%v'", config.Storage.Provider)
	}
}
