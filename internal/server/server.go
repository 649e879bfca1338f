package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lglog/internal/catalog"
	"lglog/internal/collect"
	"lglog/internal/model"
	"lglog/internal/query"
)

// Server é a borda HTTP do back-office: decodifica o corpo, delega para o
// normalizador e o orquestrador de coleta e serializa o Reconciliation.
type Server struct {
	Coleta   *collect.Service
	Catalogo *catalog.Catalog
}

func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/catalogo", s.listarCatalogo)
	r.POST("/produtos/coletar", s.coletarProdutos)

	return r
}

func (s *Server) listarCatalogo(c *gin.Context) {
	c.JSON(http.StatusOK, s.Catalogo.PorNome)
}

func (s *Server) coletarProdutos(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	// assinatura não entra na coleta de produtos (regra do domínio)
	if nome := strings.TrimSpace(req.NomeProduto); nome != "" && s.Catalogo != nil {
		if info, ok := s.Catalogo.Info(nome); ok &&
			strings.EqualFold(strings.TrimSpace(info.Tipo), catalog.TipoAssinatura) {
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": "'" + nome + "' é do tipo 'assinatura'; selecione apenas produtos",
			})
			return
		}
	}

	q, overrides, err := query.Normalize(req)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Error(), "campo": verr.Campo})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := s.Coleta.Run(c.Request.Context(), q, overrides)
	if err != nil {
		if errors.Is(err, model.ErrAllSourcesUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
