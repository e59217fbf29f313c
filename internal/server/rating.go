package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ratingdomain "github.com/limanops/tarife/internal/rating/domain"
)

func (s *Server) ResolvePrice(c *gin.Context) {
	var req ratingdomain.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	line, err := s.ratingSvc.Resolve(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}
