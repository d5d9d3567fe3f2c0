package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devpaiola/cadastroLead/internal/services"
)

// PrizeHandler handles the prize catalog, draw and voucher routes
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{
		prizeService: prizeService,
	}
}

// ListPrizes handles GET /premios
func (h *PrizeHandler) ListPrizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sucesso": true,
		"premios": h.prizeService.Catalog(),
	})
}

// DrawPrize handles POST /sortear-premio
func (h *PrizeHandler) DrawPrize(c *gin.Context) {
	result, err := h.prizeService.Draw(c.Request.Context(), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"sucesso":  true,
		"premio":   result.Prize,
		"mensagem": "Parabéns! Você ganhou: " + result.Prize,
	}
	if result.Voucher != "" {
		body["comprovante"] = result.Voucher
	}
	c.JSON(http.StatusOK, body)
}

// VerifyVoucher handles GET /comprovantes/:token
func (h *PrizeHandler) VerifyVoucher(c *gin.Context) {
	award, err := h.prizeService.VerifyVoucher(c.Request.Context(), c.Param("token"))
	switch {
	case errors.Is(err, services.ErrInvalidVoucher):
		c.JSON(http.StatusNotFound, gin.H{"erro": "Comprovante inválido"})
		return
	case errors.Is(err, services.ErrVouchersDisabled):
		c.JSON(http.StatusNotFound, gin.H{"erro": "Comprovantes desativados"})
		return
	case err != nil:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":     true,
		"premio":      award.Prize,
		"emitido_em":  award.IssuedAt,
		"valido_ate":  award.ExpiresAt,
		"comprovante": award.VoucherID,
	})
}
