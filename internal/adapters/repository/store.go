// Package repository loads the static pet and talent dataset.
package repository

import (
	"context"

	"github.com/okian/gobu/internal/domain/catalog"
)

// Store provides the dataset the catalog is built from.
type Store interface {
	// Load reads and validates both collections. It is called once at
	// startup; the result is never mutated afterwards.
	Load(ctx context.Context) (catalog.Dataset, error)
}
