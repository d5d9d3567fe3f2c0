package promoapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpaiola/cadastroLead/internal/models"
)

func TestClient_RegisterUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cadastrar-usuario", r.URL.Path)

		var p Person
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Maria", p.Nome)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RegisterResponse{Sucesso: true, Mensagem: "ok", Cadastrador: p})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", false)
	resp, err := c.RegisterUser(context.Background(), Person{Nome: "Maria", Email: "m@x.com", Telefone: "11"})
	require.NoError(t, err)
	assert.True(t, resp.Sucesso)
	assert.Equal(t, "m@x.com", resp.Cadastrador.Email)
}

func TestClient_RegisterLeadsSendsReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LeadsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Maria", req.Referencia)
		_ = json.NewEncoder(w).Encode(LeadsResponse{Sucesso: true, LeadsSalvos: req.Leads})
	}))
	defer srv.Close()

	leads := []Person{{Nome: "A"}, {Nome: "B"}, {Nome: "C"}}
	resp, err := NewClient(srv.URL, false).RegisterLeads(context.Background(), leads, "Maria")
	require.NoError(t, err)
	assert.Len(t, resp.LeadsSalvos, 3)
}

func TestClient_ErrorBodyBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"erro":"Email inválido"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, false).RegisterUser(context.Background(), Person{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Email inválido", apiErr.UserMessage())
}

func TestClient_ListPrizesAndDraw(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/premios", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(PrizesResponse{Sucesso: true, Premios: []string{"Frete Grátis"}})
	})
	mux.HandleFunc("/sortear-premio", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewEncoder(w).Encode(DrawResponse{Sucesso: true, Premio: "Frete Grátis"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, false)
	prizes, err := c.ListPrizes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Frete Grátis"}, prizes)

	draw, err := c.DrawPrize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Frete Grátis", draw.Premio)
}

func TestClient_EmptyPrizeIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sucesso":true}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, false).DrawPrize(context.Background())
	assert.Error(t, err)
}

func TestClient_MockAPI(t *testing.T) {
	c := NewClient("http://unreachable.invalid", true)
	ctx := context.Background()

	reg, err := c.RegisterUser(ctx, Person{Nome: "Maria"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", reg.Cadastrador.Nome)

	leads, err := c.RegisterLeads(ctx, []Person{{}, {}, {}}, "Maria")
	require.NoError(t, err)
	assert.Equal(t, "3 leads cadastrados com sucesso!", leads.Mensagem)

	prizes, err := c.ListPrizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPrizeLabels(), prizes)

	draw, err := c.DrawPrize(ctx)
	require.NoError(t, err)
	assert.Contains(t, prizes, draw.Premio)
}
