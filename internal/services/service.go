package services

import (
	"context"
	"errors"

	"github.com/devpaiola/cadastroLead/internal/models"
)

// LeadService defines the lead ledger operations behind the registration routes
type LeadService interface {
	// RegisterUser stores a registrant row and returns it.
	RegisterUser(ctx context.Context, c models.Contact) (*models.Lead, error)
	// RegisterLeads stores 3 to 5 referred leads under reference. Nothing is
	// stored unless every lead is valid.
	RegisterLeads(ctx context.Context, reference string, leads []models.Contact) ([]*models.Lead, error)
	// Stats counts registrants, referred leads and awarded prizes.
	Stats(ctx context.Context) (*models.LeadStats, error)
}

// PrizeService defines the prize catalog and draw operations
type PrizeService interface {
	Catalog() []string
	Draw(ctx context.Context, clientIP string) (*DrawResult, error)
	VerifyVoucher(ctx context.Context, token string) (*models.Award, error)
}

// DrawResult is a drawn prize and, when vouchers are enabled, its signed voucher.
type DrawResult struct {
	Prize   string
	Voucher string
}

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidVoucher is returned for vouchers that fail verification or were never issued.
	ErrInvalidVoucher = errors.New("invalid voucher")
	// ErrVouchersDisabled is returned by VerifyVoucher when no signing secret is configured.
	ErrVouchersDisabled = errors.New("vouchers are disabled")
)

// ValidationError is a request the client must fix. Message is shown verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
