// Package storage provides the object storage abstraction and its S3 implementation.
package storage

import "context"

// ObjectStorage accepts bytes for a key and makes them durably available.
// Implementations perform a single attempt; retry policy belongs to callers.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}
