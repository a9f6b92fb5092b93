package repository

import "context"

// ObjectStore abstracts the remote store holding the model artifact tree
type ObjectStore interface {
	// List returns the keys of all non-directory objects under the
	// store's configured prefix.
	List(ctx context.Context) ([]string, error)

	// Download writes the object identified by key to localPath,
	// creating parent directories as needed.
	Download(ctx context.Context, key, localPath string) error

	// Prefix returns the configured key prefix.
	Prefix() string
}
