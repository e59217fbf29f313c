package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
)

func (s *Server) ListTariffs(c *gin.Context) {
	filter := tariffdomain.ListFilter{
		Status:   tariffdomain.TariffStatus(c.Query("status")),
		Currency: c.Query("currency"),
	}
	docs, err := s.tariffSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tariffs": docs})
}

func (s *Server) GetTariffByID(c *gin.Context) {
	doc, err := s.tariffSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) CreateTariffDraft(c *gin.Context) {
	var req tariffdomain.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	doc, err := s.tariffSvc.CreateDraft(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) PutTariffItem(c *gin.Context) {
	var req tariffdomain.PutItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	item, err := s.tariffSvc.PutItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) ApproveTariff(c *gin.Context) {
	var req tariffdomain.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	result, err := s.tariffSvc.Approve(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.LifecycleTotal.WithLabelValues("approve").Inc()
	c.JSON(http.StatusOK, result)
}

func (s *Server) DiscardTariff(c *gin.Context) {
	doc, err := s.tariffSvc.Discard(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.LifecycleTotal.WithLabelValues("discard").Inc()
	c.JSON(http.StatusOK, doc)
}

func (s *Server) RetireTariff(c *gin.Context) {
	var req tariffdomain.RetireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	doc, err := s.tariffSvc.Retire(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.LifecycleTotal.WithLabelValues("retire").Inc()
	c.JSON(http.StatusOK, doc)
}

func (s *Server) DeriveTariff(c *gin.Context) {
	var req tariffdomain.DeriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	out, err := s.tariffSvc.Derive(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.metrics.LifecycleTotal.WithLabelValues("derive").Inc()
	c.JSON(http.StatusCreated, out)
}
