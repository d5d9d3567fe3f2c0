package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
)

const (
	MinLeads = 3
	MaxLeads = 5
)

var _ LeadService = (*LeadServiceImpl)(nil)

// LeadServiceImpl validates registrations and writes them to the ledger
type LeadServiceImpl struct {
	leadRepo  repositories.LeadRepository
	awardRepo repositories.AwardRepository
}

// NewLeadService creates a new LeadServiceImpl
func NewLeadService(leadRepo repositories.LeadRepository, awardRepo repositories.AwardRepository) *LeadServiceImpl {
	return &LeadServiceImpl{
		leadRepo:  leadRepo,
		awardRepo: awardRepo,
	}
}

func trimContact(c models.Contact) models.Contact {
	return models.Contact{
		Nome:     strings.TrimSpace(c.Nome),
		Email:    strings.TrimSpace(c.Email),
		Telefone: strings.TrimSpace(c.Telefone),
	}
}

func complete(c models.Contact) bool {
	return c.Nome != "" && c.Email != "" && c.Telefone != ""
}

// RegisterUser stores the registrant with the CADASTRADOR reference
func (s *LeadServiceImpl) RegisterUser(ctx context.Context, c models.Contact) (*models.Lead, error) {
	c = trimContact(c)
	if !complete(c) {
		return nil, invalid("Todos os campos são obrigatórios")
	}
	if !strings.Contains(c.Email, "@") {
		return nil, invalid("Email inválido")
	}

	lead := &models.Lead{
		Nome:       c.Nome,
		Email:      c.Email,
		Telefone:   c.Telefone,
		Referencia: models.ReferenceRegistrant,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		slog.Error("Failed to store registrant", "error", err, "telefone", maskPhone(c.Telefone))
		return nil, fmt.Errorf("failed to store registrant: %w", err)
	}
	slog.Info("Registrant stored", "leadId", lead.ID.Hex(), "telefone", maskPhone(c.Telefone))
	return lead, nil
}

// RegisterLeads validates every lead before storing any of them
func (s *LeadServiceImpl) RegisterLeads(ctx context.Context, reference string, contacts []models.Contact) ([]*models.Lead, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, invalid("Referência do cadastrador é obrigatória")
	}
	if len(contacts) < MinLeads {
		return nil, invalid(fmt.Sprintf("É necessário cadastrar pelo menos %d leads", MinLeads))
	}
	if len(contacts) > MaxLeads {
		return nil, invalid(fmt.Sprintf("Máximo de %d leads por cadastro", MaxLeads))
	}

	leads := make([]*models.Lead, 0, len(contacts))
	for _, c := range contacts {
		c = trimContact(c)
		if !complete(c) {
			name := c.Nome
			if name == "" {
				name = "Nome vazio"
			}
			return nil, invalid("Todos os campos são obrigatórios para o lead: " + name)
		}
		if !strings.Contains(c.Email, "@") {
			return nil, invalid("Email inválido para o lead: " + c.Nome)
		}
		leads = append(leads, &models.Lead{
			Nome:       c.Nome,
			Email:      c.Email,
			Telefone:   c.Telefone,
			Referencia: reference,
		})
	}

	if err := s.leadRepo.CreateMany(ctx, leads); err != nil {
		slog.Error("Failed to store leads", "error", err, "referencia", reference, "count", len(leads))
		return nil, fmt.Errorf("failed to store leads: %w", err)
	}
	slog.Info("Leads stored", "referencia", reference, "count", len(leads))
	return leads, nil
}

// Stats summarises the ledger
func (s *LeadServiceImpl) Stats(ctx context.Context) (*models.LeadStats, error) {
	total, err := s.leadRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}
	registrants, err := s.leadRepo.CountByReference(ctx, models.ReferenceRegistrant)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrants: %w", err)
	}
	stats := &models.LeadStats{
		TotalLeads:         total,
		TotalCadastradores: registrants,
		LeadsReferenciados: total - registrants,
	}
	if s.awardRepo != nil {
		awards, err := s.awardRepo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count awards: %w", err)
		}
		stats.TotalSorteios = awards
	}
	return stats, nil
}

func maskPhone(phone string) string {
	if len(phone) > 6 {
		return phone[:3] + "******" + phone[len(phone)-3:]
	}
	return "******"
}
