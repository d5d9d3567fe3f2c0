package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
	"github.com/devpaiola/cadastroLead/internal/rng"
	"github.com/devpaiola/cadastroLead/pkg/voucher"
)

var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl draws prizes from the configured catalog and issues vouchers
type PrizeServiceImpl struct {
	labels []string
	probs  []float64

	mu  sync.Mutex // guards src
	src rng.Source

	vouchers  *voucher.Service
	awardRepo repositories.AwardRepository
	newID     func() string
}

// NewPrizeService creates a prize service over prizes, whose weights are
// normalized. vouchers and awardRepo may be nil, in which case draws carry no
// voucher and nothing is recorded.
func NewPrizeService(prizes []models.Prize, src rng.Source, vouchers *voucher.Service, awardRepo repositories.AwardRepository) (*PrizeServiceImpl, error) {
	if len(prizes) == 0 {
		prizes = models.DefaultPrizes()
	}
	labels := make([]string, len(prizes))
	weights := make([]float64, len(prizes))
	for i, p := range prizes {
		labels[i] = p.Label
		weights[i] = p.Weight
	}
	probs, err := rng.Normalize(weights)
	if err != nil {
		return nil, fmt.Errorf("invalid prize weights: %w", err)
	}
	if err := rng.Validate(labels, probs); err != nil {
		return nil, fmt.Errorf("invalid prize catalog: %w", err)
	}
	if src == nil {
		src = rng.NewSource()
	}
	return &PrizeServiceImpl{
		labels:    labels,
		probs:     probs,
		src:       src,
		vouchers:  vouchers,
		awardRepo: awardRepo,
		newID:     uuid.NewString,
	}, nil
}

// Catalog returns the prize labels in catalog order
func (s *PrizeServiceImpl) Catalog() []string {
	return append([]string(nil), s.labels...)
}

// Draw picks one prize. With vouchers enabled the award is recorded and a
// signed voucher returned with it.
func (s *PrizeServiceImpl) Draw(ctx context.Context, clientIP string) (*DrawResult, error) {
	s.mu.Lock()
	prize, err := rng.WeightedDraw(s.src, s.labels, s.probs)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("prize draw failed: %w", err)
	}

	result := &DrawResult{Prize: prize}
	if s.vouchers == nil {
		slog.Info("Prize drawn", "prize", prize)
		return result, nil
	}

	id := s.newID()
	token, claims, err := s.vouchers.Issue(id, prize)
	if err != nil {
		slog.Error("Failed to issue voucher", "error", err, "prize", prize)
		return nil, err
	}
	if s.awardRepo != nil {
		award := &models.Award{
			VoucherID: id,
			Prize:     prize,
			ClientIP:  clientIP,
			IssuedAt:  claims.IssuedAt.Time,
			ExpiresAt: claims.ExpiresAt.Time,
		}
		if err := s.awardRepo.Create(ctx, award); err != nil {
			slog.Error("Failed to record award", "error", err, "voucherId", id)
			return nil, fmt.Errorf("failed to record award: %w", err)
		}
	}
	slog.Info("Prize drawn", "prize", prize, "voucherId", id)
	result.Voucher = token
	return result, nil
}

// VerifyVoucher checks token and returns the award it was issued for
func (s *PrizeServiceImpl) VerifyVoucher(ctx context.Context, token string) (*models.Award, error) {
	if s.vouchers == nil {
		return nil, ErrVouchersDisabled
	}
	claims, err := s.vouchers.Verify(token)
	if err != nil {
		slog.Warn("Voucher rejected", "error", err)
		return nil, ErrInvalidVoucher
	}
	if s.awardRepo == nil {
		return &models.Award{
			VoucherID: claims.ID,
			Prize:     claims.Prize,
			IssuedAt:  claims.IssuedAt.Time,
			ExpiresAt: claims.ExpiresAt.Time,
		}, nil
	}
	award, err := s.awardRepo.FindByVoucherID(ctx, claims.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidVoucher
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up award: %w", err)
	}
	return award, nil
}
