// Package memory holds in-process repositories for tests and local runs
// without MongoDB.
package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
)

var (
	_ repositories.LeadRepository  = (*LeadRepository)(nil)
	_ repositories.AwardRepository = (*AwardRepository)(nil)
)

// LeadRepository keeps the ledger in insertion order.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []models.Lead
	// Err, when set, is returned by every write.
	Err error
}

func NewLeadRepository() *LeadRepository { return &LeadRepository{} }

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return r.CreateMany(ctx, []*models.Lead{lead})
}

func (r *LeadRepository) CreateMany(_ context.Context, leads []*models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now()
	for _, lead := range leads {
		lead.ID = primitive.NewObjectID()
		if lead.DataCadastro.IsZero() {
			lead.DataCadastro = now
		}
		r.leads = append(r.leads, *lead)
	}
	return nil
}

func (r *LeadRepository) FindAll(context.Context) ([]*models.Lead, error) {
	return r.filter(func(*models.Lead) bool { return true }), nil
}

func (r *LeadRepository) FindByReference(_ context.Context, reference string) ([]*models.Lead, error) {
	return r.filter(func(l *models.Lead) bool { return l.Referencia == reference }), nil
}

func (r *LeadRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.leads)), nil
}

func (r *LeadRepository) CountByReference(ctx context.Context, reference string) (int64, error) {
	leads, _ := r.FindByReference(ctx, reference)
	return int64(len(leads)), nil
}

func (r *LeadRepository) filter(keep func(*models.Lead) bool) []*models.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Lead{}
	for i := range r.leads {
		l := r.leads[i]
		if keep(&l) {
			out = append(out, &l)
		}
	}
	return out
}

// AwardRepository keeps awards by voucher id.
type AwardRepository struct {
	mu     sync.RWMutex
	awards map[string]models.Award
	// Err, when set, is returned by every write.
	Err error
}

func NewAwardRepository() *AwardRepository {
	return &AwardRepository{awards: map[string]models.Award{}}
}

func (r *AwardRepository) Create(_ context.Context, award *models.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	award.ID = primitive.NewObjectID()
	r.awards[award.VoucherID] = *award
	return nil
}

func (r *AwardRepository) FindByVoucherID(_ context.Context, voucherID string) (*models.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	award, ok := r.awards[voucherID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &award, nil
}

func (r *AwardRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.awards)), nil
}
