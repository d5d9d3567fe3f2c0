package wheel

import (
	"context"

	"github.com/devpaiola/cadastroLead/internal/widget"
	"github.com/devpaiola/cadastroLead/pkg/promoapi"
)

// APIBackend is a Backend served by the promo API.
type APIBackend struct {
	client *promoapi.Client
}

var _ Backend = (*APIBackend)(nil)

func NewAPIBackend(client *promoapi.Client) *APIBackend {
	return &APIBackend{client: client}
}

func (b *APIBackend) RegisterUser(ctx context.Context, r widget.Registrant) (widget.Registrant, error) {
	resp, err := b.client.RegisterUser(ctx, promoapi.Person{Nome: r.Name, Email: r.Email, Telefone: r.Phone})
	if err != nil {
		return widget.Registrant{}, err
	}
	c := resp.Cadastrador
	return widget.Registrant{Name: c.Nome, Email: c.Email, Phone: c.Telefone}, nil
}

func (b *APIBackend) RegisterLeads(ctx context.Context, leads []widget.Lead, reference string) (int, error) {
	people := make([]promoapi.Person, len(leads))
	for i, l := range leads {
		people[i] = promoapi.Person{Nome: l.Name, Email: l.Email, Telefone: l.Phone}
	}
	resp, err := b.client.RegisterLeads(ctx, people, reference)
	if err != nil {
		return 0, err
	}
	return len(resp.LeadsSalvos), nil
}

func (b *APIBackend) ListPrizes(ctx context.Context) ([]string, error) {
	return b.client.ListPrizes(ctx)
}

func (b *APIBackend) DrawPrize(ctx context.Context) (string, error) {
	resp, err := b.client.DrawPrize(ctx)
	if err != nil {
		return "", err
	}
	return resp.Premio, nil
}
