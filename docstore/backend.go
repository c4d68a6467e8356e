package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/holmberd/go-jsonio/datastore"
)

var (
	ErrNotFound    = errors.New("docstore: document not found")
	ErrInvalidName = errors.New("docstore: invalid document name")
)

// Backend holds the encoded documents of a Store.
// Get returns an error wrapping ErrNotFound when the document does not exist.
type Backend interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, names ...string) error
	Exists(ctx context.Context, name string) (bool, error)
	Names(ctx context.Context) ([]string, error)
}

// FileBackend stores each document as a file below a root directory.
// Document names are slash-separated paths relative to the root.
type FileBackend struct {
	root string
}

// NewFileBackend returns a backend rooted at dir, which must exist.
func NewFileBackend(dir string) (*FileBackend, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("docstore: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docstore: %q is not a directory", dir)
	}
	return &FileBackend{root: dir}, nil
}

func (b *FileBackend) Root() string {
	return b.root
}

func (b *FileBackend) path(name string) (string, error) {
	if name == "" || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(b.root, filepath.FromSlash(name)), nil
}

// Put writes data to the document file, creating parent directories of nested names.
func (b *FileBackend) Put(_ context.Context, name string, data []byte) error {
	path, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("docstore: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("docstore: %w", err)
	}
	return nil
}

func (b *FileBackend) Get(_ context.Context, name string) ([]byte, error) {
	path, err := b.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("docstore: %w", err)
	}
	return data, nil
}

// Delete removes the document files. Missing documents are ignored.
func (b *FileBackend) Delete(_ context.Context, names ...string) error {
	for _, name := range names {
		path, err := b.path(name)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("docstore: %w", err)
		}
	}
	return nil
}

func (b *FileBackend) Exists(_ context.Context, name string) (bool, error) {
	path, err := b.path(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("docstore: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Names returns the names of all regular files below the root in lexical order.
func (b *FileBackend) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(b.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: %w", err)
	}
	return names, nil
}

// RedisBackend stores each document under a namespaced Redis key.
type RedisBackend struct {
	dsClient   *datastore.Client
	namespace  string        // Optional key namespace.
	expiration time.Duration // Zero means no expiration.
}

// NewRedisBackend returns a backend storing documents with dsClient.
func NewRedisBackend(
	dsClient *datastore.Client,
	namespace string,
	expiration time.Duration,
) (*RedisBackend, error) {
	if dsClient == nil {
		return nil, errors.New("docstore: datastore client must not be nil")
	}
	if namespace != "" {
		if err := datastore.ValidateNamespace(namespace); err != nil {
			return nil, err
		}
	}
	return &RedisBackend{
		dsClient:   dsClient,
		namespace:  namespace,
		expiration: expiration,
	}, nil
}

func (b *RedisBackend) Namespace() string {
	return b.namespace
}

func (b *RedisBackend) key(name string) (string, error) {
	key, err := datastore.NewKey(b.namespace, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return key, nil
}

func (b *RedisBackend) Put(ctx context.Context, name string, data []byte) error {
	key, err := b.key(name)
	if err != nil {
		return err
	}
	return b.dsClient.Put(ctx, key, data, b.expiration)
}

func (b *RedisBackend) Get(ctx context.Context, name string) ([]byte, error) {
	key, err := b.key(name)
	if err != nil {
		return nil, err
	}
	data, err := b.dsClient.Get(ctx, key)
	if err != nil {
		if errors.Is(err, datastore.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Delete(ctx context.Context, names ...string) error {
	keys := make([]string, len(names))
	for i, name := range names {
		key, err := b.key(name)
		if err != nil {
			return err
		}
		keys[i] = key
	}
	return b.dsClient.Delete(ctx, keys...)
}

func (b *RedisBackend) Exists(ctx context.Context, name string) (bool, error) {
	key, err := b.key(name)
	if err != nil {
		return false, err
	}
	return b.dsClient.Exists(ctx, key)
}

// Names returns the names of all documents in the namespace in lexical order.
//
// NOTE: Without a namespace every key in the Redis database that is not
// namespaced is reported.
func (b *RedisBackend) Names(ctx context.Context) ([]string, error) {
	keys, err := b.dsClient.ScanKeys(ctx, datastore.MatchPattern(b.namespace))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name, ok := datastore.KeyName(b.namespace, key)
		if !ok || strings.HasPrefix(name, datastore.ReservedNamespaceDelimiter) {
			continue // Key outside the namespace.
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
