package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"seedfix/core/reconcile"
	"seedfix/core/storage"

	"github.com/minio/minio-go/v7"
)

// ContentType is the MIME type stored with uploaded documents.
const ContentType = "application/sql"

// ObjectGateway stores documents as objects in an S3-compatible bucket.
type ObjectGateway struct {
	client storage.Client
	bucket string
	backup bool
}

// NewObjectGateway creates a gateway over the given storage client and bucket.
func NewObjectGateway(client storage.Client, bucket string, backup bool) *ObjectGateway {
	return &ObjectGateway{client: client, bucket: bucket, backup: backup}
}

var _ Gateway = (*ObjectGateway)(nil)

// Load downloads the object name.
func (g *ObjectGateway) Load(ctx context.Context, name string) (reconcile.Document, error) {
	key, err := objectKey(name)
	if err != nil {
		return "", err
	}
	if err := g.checkBucket(ctx); err != nil {
		return "", err
	}

	data, err := g.read(ctx, key)
	if err != nil {
		return "", err
	}
	return reconcile.Document(data), nil
}

// Save uploads doc as name, copying the previous object to name.bak first if enabled.
func (g *ObjectGateway) Save(ctx context.Context, name string, doc reconcile.Document) error {
	key, err := objectKey(name)
	if err != nil {
		return err
	}
	if err := g.checkBucket(ctx); err != nil {
		return err
	}

	if g.backup {
		_, err := g.client.StatObject(ctx, g.bucket, key, minio.StatObjectOptions{})
		switch {
		case err == nil:
			prev, err := g.read(ctx, key)
			if err != nil {
				return err
			}
			if err := g.write(ctx, key+BackupSuffix, prev); err != nil {
				return fmt.Errorf("failed to write backup of %s: %w", key, err)
			}
		case !storage.IsNotFound(err):
			return fmt.Errorf("failed to stat %s/%s: %w", g.bucket, key, err)
		}
	}

	if err := g.write(ctx, key, []byte(doc)); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", g.bucket, key, err)
	}
	return nil
}

func (g *ObjectGateway) checkBucket(ctx context.Context) error {
	exists, err := g.client.BucketExists(ctx, g.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", g.bucket, err)
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s does not exist", ErrNotFound, g.bucket)
	}
	return nil
}

func (g *ObjectGateway) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := g.client.GetObject(ctx, g.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", g.bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// minio reports a missing key on the first read, not on GetObject.
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, g.bucket, key)
		}
		return nil, fmt.Errorf("failed to read %s/%s: %w", g.bucket, key, err)
	}
	return data, nil
}

func (g *ObjectGateway) write(ctx context.Context, key string, data []byte) error {
	_, err := g.client.PutObject(ctx, g.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	return err
}

func objectKey(name string) (string, error) {
	key := strings.TrimLeft(strings.TrimSpace(name), "/")
	if key == "" {
		return "", ErrPathInvalid
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrPathInvalid
		}
	}
	return key, nil
}
