package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories/memory"
)

func contacts(n int) []models.Contact {
	out := make([]models.Contact, n)
	for i := range out {
		out[i] = models.Contact{Nome: string(rune('A' + i)), Email: "lead@example.com", Telefone: "11999990000"}
	}
	return out
}

func TestLeadService_RegisterUser(t *testing.T) {
	repo := memory.NewLeadRepository()
	svc := NewLeadService(repo, nil)

	lead, err := svc.RegisterUser(context.Background(), models.Contact{Nome: " Maria ", Email: "maria@example.com", Telefone: "11988887777"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", lead.Nome)
	assert.Equal(t, models.ReferenceRegistrant, lead.Referencia)
	assert.False(t, lead.ID.IsZero())
	assert.False(t, lead.DataCadastro.IsZero())

	n, _ := repo.Count(context.Background())
	assert.EqualValues(t, 1, n)
}

func TestLeadService_RegisterUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		contact models.Contact
		want    string
	}{
		{"missing phone", models.Contact{Nome: "Maria", Email: "m@x.com"}, "Todos os campos são obrigatórios"},
		{"blank name", models.Contact{Nome: "  ", Email: "m@x.com", Telefone: "1"}, "Todos os campos são obrigatórios"},
		{"email without at", models.Contact{Nome: "Maria", Email: "maria.example.com", Telefone: "1"}, "Email inválido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewLeadRepository()
			_, err := NewLeadService(repo, nil).RegisterUser(context.Background(), tt.contact)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.want, err.Error())
			n, _ := repo.Count(context.Background())
			assert.Zero(t, n)
		})
	}
}

func TestLeadService_RegisterLeads(t *testing.T) {
	repo := memory.NewLeadRepository()
	svc := NewLeadService(repo, nil)

	leads, err := svc.RegisterLeads(context.Background(), "Maria", contacts(4))
	require.NoError(t, err)
	assert.Len(t, leads, 4)
	for _, l := range leads {
		assert.Equal(t, "Maria", l.Referencia)
	}

	stored, _ := repo.FindByReference(context.Background(), "Maria")
	assert.Len(t, stored, 4)
}

func TestLeadService_RegisterLeadsValidation(t *testing.T) {
	badEmail := contacts(3)
	badEmail[1].Email = "semarroba"
	missing := contacts(3)
	missing[2] = models.Contact{Email: "x@y.z", Telefone: "1"}

	tests := []struct {
		name      string
		reference string
		leads     []models.Contact
		want      string
	}{
		{"no reference", " ", contacts(3), "Referência do cadastrador é obrigatória"},
		{"too few", "Maria", contacts(2), "É necessário cadastrar pelo menos 3 leads"},
		{"too many", "Maria", contacts(6), "Máximo de 5 leads por cadastro"},
		{"bad email", "Maria", badEmail, "Email inválido para o lead: B"},
		{"missing name", "Maria", missing, "Todos os campos são obrigatórios para o lead: Nome vazio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewLeadRepository()
			_, err := NewLeadService(repo, nil).RegisterLeads(context.Background(), tt.reference, tt.leads)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.want, err.Error())

			n, _ := repo.Count(context.Background())
			assert.Zero(t, n, "nothing is stored when any lead is invalid")
		})
	}
}

func TestLeadService_StoreFailureIsNotValidation(t *testing.T) {
	repo := memory.NewLeadRepository()
	repo.Err = errors.New("connection reset")

	_, err := NewLeadService(repo, nil).RegisterUser(context.Background(), models.Contact{Nome: "M", Email: "m@x", Telefone: "1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestLeadService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLeadRepository()
	awards := memory.NewAwardRepository()
	svc := NewLeadService(repo, awards)

	_, err := svc.RegisterUser(ctx, models.Contact{Nome: "Maria", Email: "m@x.com", Telefone: "1"})
	require.NoError(t, err)
	_, err = svc.RegisterLeads(ctx, "Maria", contacts(3))
	require.NoError(t, err)
	require.NoError(t, awards.Create(ctx, &models.Award{VoucherID: "v1", Prize: "Frete Grátis"}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.LeadStats{TotalLeads: 4, TotalCadastradores: 1, LeadsReferenciados: 3, TotalSorteios: 1}, stats)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "119******777", maskPhone("11988887777"))
	assert.Equal(t, "******", maskPhone("1234"))
}
