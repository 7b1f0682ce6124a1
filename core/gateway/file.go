package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"seedfix/core/reconcile"
)

const (
	filePerm = 0o644
	bufSize  = 64 * 1024
)

// FileGateway stores documents on the local filesystem below a root directory.
// Saves are atomic: a temporary file in the same directory is synced and renamed
// over the destination.
type FileGateway struct {
	root   string
	backup bool
}

// NewFileGateway creates a filesystem gateway rooted at root.
func NewFileGateway(root string, backup bool) *FileGateway {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	return &FileGateway{root: root, backup: backup}
}

var _ Gateway = (*FileGateway)(nil)

// Load reads the document at name.
func (g *FileGateway) Load(ctx context.Context, name string) (reconcile.Document, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := g.resolve(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return reconcile.Document(data), nil
}

// Save atomically replaces the document at name, keeping a backup if enabled.
func (g *FileGateway) Save(ctx context.Context, name string, doc reconcile.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := g.resolve(name)
	if err != nil {
		return err
	}

	// An existing document keeps its permissions.
	perm := fs.FileMode(filePerm)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if g.backup {
		prev, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := writeAtomic(path+BackupSuffix, prev, perm); err != nil {
				return fmt.Errorf("failed to write backup of %s: %w", path, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to read %s for backup: %w", path, err)
		}
	}

	if err := writeAtomic(path, []byte(doc), perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// resolve joins name onto the root; absolute names are used as-is.
func (g *FileGateway) resolve(name string) (string, error) {
	rel := filepath.Clean(name)
	if rel == "." || rel == "" {
		return "", ErrPathInvalid
	}
	if filepath.IsAbs(rel) {
		return rel, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathInvalid
	}
	return filepath.Join(g.root, rel), nil
}

func writeAtomic(dest string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".seedfix-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, bufSize)
	if _, err := bw.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Best effort: persist the rename.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
