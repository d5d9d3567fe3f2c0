package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/services"
)

// LeadHandler handles the registration and statistics routes
type LeadHandler struct {
	leadService services.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

type registerLeadsRequest struct {
	Leads      []models.Contact `json:"leads"`
	Referencia string           `json:"referencia"`
}

// RegisterUser handles POST /cadastrar-usuario
func (h *LeadHandler) RegisterUser(c *gin.Context) {
	var req models.Contact
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	lead, err := h.leadService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":     true,
		"mensagem":    "Usuário cadastrado com sucesso!",
		"cadastrador": lead.Contact(),
	})
}

// RegisterLeads handles POST /cadastrar-leads
func (h *LeadHandler) RegisterLeads(c *gin.Context) {
	var req registerLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	leads, err := h.leadService.RegisterLeads(c.Request.Context(), req.Referencia, req.Leads)
	if err != nil {
		respondError(c, err)
		return
	}

	saved := make([]models.Contact, len(leads))
	for i, l := range leads {
		saved[i] = l.Contact()
	}
	c.JSON(http.StatusOK, gin.H{
		"sucesso":      true,
		"mensagem":     fmt.Sprintf("%d leads cadastrados com sucesso!", len(saved)),
		"leads_salvos": saved,
	})
}

// Stats handles GET /stats
func (h *LeadHandler) Stats(c *gin.Context) {
	stats, err := h.leadService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
