package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/mount/internal/errors"
)

// DiskStore writes documents under a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.CodePublishFailed).Wrap(err)
	}
	return &DiskStore{dir: dir}, nil
}

// Put writes body to dir/key. The file is written to a temp file first and
// renamed into place.
func (s *DiskStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".publish-*")
	if err != nil {
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.New(errors.CodePublishFailed).Wrap(err)
	}
	return path, nil
}
