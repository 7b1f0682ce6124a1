package gateway

import (
	"context"
	"errors"
	"fmt"

	"seedfix/core/reconcile"
	"seedfix/core/storage"
)

// BackupSuffix is appended to a document name to form its backup name.
const BackupSuffix = ".bak"

var (
	// ErrPathInvalid is returned when a document name escapes the gateway root.
	ErrPathInvalid = errors.New("invalid document path")

	// ErrNotFound is returned when the document does not exist.
	ErrNotFound = errors.New("document not found")
)

// Gateway loads and stores seed documents.
type Gateway interface {
	// Load reads the whole document.
	Load(ctx context.Context, name string) (reconcile.Document, error)
	// Save replaces the document with doc.
	Save(ctx context.Context, name string, doc reconcile.Document) error
}

// New creates the gateway selected by cfg.Driver.
// The storage client is only required by the s3 driver.
func New(cfg Config, storageCfg storage.Config, client storage.Client) (Gateway, error) {
	switch cfg.Driver {
	case DriverFile, "":
		return NewFileGateway(cfg.Root, cfg.Backup), nil
	case DriverS3:
		if client == nil {
			return nil, fmt.Errorf("gateway driver %q requires a storage client", cfg.Driver)
		}
		return NewObjectGateway(client, storageCfg.Bucket, cfg.Backup), nil
	default:
		return nil, fmt.Errorf("unsupported gateway driver %q", cfg.Driver)
	}
}
