package promoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/rng"
)

// Client talks to the lead registration and prize draw API.
type Client struct {
	BaseURL string
	MockAPI bool
	client  *http.Client
	src     rng.Source
}

// Person is a registrant or lead as it travels on the wire.
type Person struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

// RegisterResponse is the body of a successful POST /cadastrar-usuario.
type RegisterResponse struct {
	Sucesso     bool   `json:"sucesso"`
	Mensagem    string `json:"mensagem"`
	Cadastrador Person `json:"cadastrador"`
}

// LeadsRequest is the body of POST /cadastrar-leads.
type LeadsRequest struct {
	Leads      []Person `json:"leads"`
	Referencia string   `json:"referencia"`
}

// LeadsResponse is the body of a successful POST /cadastrar-leads.
type LeadsResponse struct {
	Sucesso     bool     `json:"sucesso"`
	Mensagem    string   `json:"mensagem"`
	LeadsSalvos []Person `json:"leads_salvos"`
}

// PrizesResponse is the body of GET /premios.
type PrizesResponse struct {
	Sucesso bool     `json:"sucesso"`
	Premios []string `json:"premios"`
}

// DrawResponse is the body of POST /sortear-premio.
type DrawResponse struct {
	Sucesso     bool   `json:"sucesso"`
	Premio      string `json:"premio"`
	Mensagem    string `json:"mensagem"`
	Comprovante string `json:"comprovante,omitempty"`
}

// APIError is a non-2xx answer. Message is the server's "erro" field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("promo api returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the text the server meant for the user.
func (e *APIError) UserMessage() string { return e.Message }

// NewClient creates a new promo API client. With mockAPI set no request leaves
// the process.
func NewClient(baseURL string, mockAPI bool) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
		src:     rng.NewSource(),
	}
}

// RegisterUser registers the person who will refer the leads.
func (c *Client) RegisterUser(ctx context.Context, p Person) (*RegisterResponse, error) {
	if c.MockAPI {
		return &RegisterResponse{Sucesso: true, Mensagem: "Usuário cadastrado com sucesso!", Cadastrador: p}, nil
	}
	var out RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/cadastrar-usuario", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterLeads registers the referred leads under reference.
func (c *Client) RegisterLeads(ctx context.Context, leads []Person, reference string) (*LeadsResponse, error) {
	if c.MockAPI {
		return &LeadsResponse{
			Sucesso:     true,
			Mensagem:    fmt.Sprintf("%d leads cadastrados com sucesso!", len(leads)),
			LeadsSalvos: leads,
		}, nil
	}
	var out LeadsResponse
	if err := c.do(ctx, http.MethodPost, "/cadastrar-leads", LeadsRequest{Leads: leads, Referencia: reference}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPrizes fetches the prize catalog.
func (c *Client) ListPrizes(ctx context.Context) ([]string, error) {
	if c.MockAPI {
		return models.DefaultPrizeLabels(), nil
	}
	var out PrizesResponse
	if err := c.do(ctx, http.MethodGet, "/premios", nil, &out); err != nil {
		return nil, err
	}
	return out.Premios, nil
}

// DrawPrize asks the server to choose a prize.
func (c *Client) DrawPrize(ctx context.Context) (*DrawResponse, error) {
	if c.MockAPI {
		labels := models.DefaultPrizeLabels()
		prize, err := rng.WeightedDraw(c.src, labels, rng.Uniform(len(labels)))
		if err != nil {
			return nil, err
		}
		return &DrawResponse{Sucesso: true, Premio: prize, Mensagem: "Parabéns! Você ganhou: " + prize}, nil
	}
	var out DrawResponse
	if err := c.do(ctx, http.MethodPost, "/sortear-premio", nil, &out); err != nil {
		return nil, err
	}
	if out.Premio == "" {
		return nil, errors.New("promo api returned an empty prize")
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Erro string `json:"erro"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Erro}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
