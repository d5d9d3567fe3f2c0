package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devpaiola/cadastroLead/internal/services"
)

// respondError writes err as {"erro": ...}. Validation errors are the client's
// fault; anything else is reported as an internal error.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": verr.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro interno: " + err.Error()})
}

func badJSON(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"erro": "Requisição inválida"})
}
