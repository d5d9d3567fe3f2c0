package repositories

import (
	"context"
	"errors"

	"github.com/devpaiola/cadastroLead/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// LeadRepository defines the interface for the lead ledger
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	// CreateMany stores leads in one batch; either all are stored or none.
	CreateMany(ctx context.Context, leads []*models.Lead) error
	FindAll(ctx context.Context) ([]*models.Lead, error)
	FindByReference(ctx context.Context, reference string) ([]*models.Lead, error)
	Count(ctx context.Context) (int64, error)
	CountByReference(ctx context.Context, reference string) (int64, error)
}

// AwardRepository defines the interface for prizes handed out by the draw
type AwardRepository interface {
	Create(ctx context.Context, award *models.Award) error
	FindByVoucherID(ctx context.Context, voucherID string) (*models.Award, error)
	Count(ctx context.Context) (int64, error)
}
