// Package records persists encrypted vault records.
package records

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/models"
)

// Repository stores records as opaque sealed blobs; it never sees plaintext
// secrets. Missing ids are reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, r *models.Record) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
	Update(ctx context.Context, r *models.Record) error
	Delete(ctx context.Context, id int64) error
}
