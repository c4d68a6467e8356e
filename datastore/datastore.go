// The datastore package provides a simple abstraction over Redis for storing and retrieving data.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	ErrKeyNotFound = errors.New("datastore: key not found")
)

const maxScanLimit = 1000

// Client represents a datastore client for interacting with a datastore.
// The client is safe for concurrent use.
type Client struct {
	rsClient *redis.Client
}

// NewClient creates a new instance of a Client.
func NewClient(rsClient *redis.Client) (*Client, error) {
	if rsClient == nil {
		return nil, errors.New("datastore: redis client must not be nil")
	}
	return &Client{
		rsClient: rsClient,
	}, nil
}

// Put writes the data with the key to the store.
// If the key doesn't exist it's added, otherwise it's overwritten.
// A zero expiration means the key has no expiration time.
func (c *Client) Put(ctx context.Context, key string, data []byte, expiration time.Duration) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := c.rsClient.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("datastore: failed to write key '%s': %w", key, err)
	}
	return nil
}

// Get retrieves the data associated with the key from the store.
// ErrKeyNotFound is returned if the key is not found in the store.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rsClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("datastore: failed to read key '%s': %w", key, err)
	}
	return data, nil
}

// Delete deletes the provided keys from the store.
// Keys that don't exist are ignored.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil // No-op for empty keys.
	}
	if err := c.rsClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("datastore: failed to delete keys from redis: %w", err)
	}
	return nil
}

// Exists checks whether the key exist in the store.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rsClient.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("datastore: %w", err)
	}
	return n > 0, nil
}

// GetKeysWithCursor retrieves a page of keys matching the glob pattern.
//   - Does not guarantee an exact number of keys returned per page.
//   - A given key may be returned multiple times.
//   - Keys that were not constantly present in the collection during a full iteration, may be returned or not.
func (c *Client) GetKeysWithCursor(
	ctx context.Context,
	cursor uint64,
	limit int,
	match string,
) (keys []string, nextCursor uint64, err error) {
	if limit <= 0 || limit > maxScanLimit {
		limit = maxScanLimit
	}
	keys, nextCursor, err = c.rsClient.Scan(ctx, cursor, match, int64(limit)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("datastore: failed scanning redis for keys: %w", err)
	}
	return keys, nextCursor, nil
}

// ScanKeys retrieves all keys matching the glob pattern as a non-blocking operation.
// Safe for production use, but may miss keys added/removed during iteration.
func (c *Client) ScanKeys(ctx context.Context, match string) ([]string, error) {
	var (
		cursor  uint64
		allKeys []string
	)
	for {
		keys, nextCursor, err := c.GetKeysWithCursor(ctx, cursor, maxScanLimit, match)
		if err != nil {
			return nil, err
		}
		allKeys = append(allKeys, keys...)
		if nextCursor == 0 {
			break
		}
		cursor = nextCursor
	}

	// Remove any potential duplicate keys returned during the scan.
	seen := make(map[string]struct{}, len(allKeys))
	keys := make([]string, 0, len(allKeys))
	for _, k := range allKeys {
		if _, exists := seen[k]; !exists {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys, nil
}
