// Package blobstore persists uploaded resume files.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("blobstore: object not found")

// Store is the object storage contract used for resume files.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ResumeKey builds the object key for a user's resume upload. The original
// filename only contributes its extension; the key itself is a UUID so
// repeated uploads of the same file never collide.
func ResumeKey(userID uint, filename string) string {
	return fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), filepath.Ext(filename))
}
