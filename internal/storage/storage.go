package storage

import (
	"context"
	"fmt"

	"github.com/Dias221467/Wallpaper_Hub/internal/config"
)

// ObjectStore keeps image bytes and hands back a public URL for them.
type ObjectStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the object store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Store(ctx, cfg)
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
