// Package vaultconfig persists the vault's write-once key/value
// configuration (salt and verifier).
package vaultconfig

import "context"

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Insert never overwrites; an existing key yields common.ErrorAlreadyExists.
	Insert(ctx context.Context, key, value string) error
	// List returns every stored key/value pair.
	List(ctx context.Context) (map[string]string, error)
}
