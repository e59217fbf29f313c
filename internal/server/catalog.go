package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
)

func (s *Server) ListServices(c *gin.Context) {
	onlyActive := c.Query("active") == "true"
	services, err := s.catalogSvc.ListServices(c.Request.Context(), onlyActive)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (s *Server) GetServiceByID(c *gin.Context) {
	svc, err := s.catalogSvc.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (s *Server) CreateService(c *gin.Context) {
	var req catalogdomain.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	svc, err := s.catalogSvc.CreateService(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (s *Server) ListVatRates(c *gin.Context) {
	rates, err := s.catalogSvc.ListVatRates(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vat_rates": rates})
}

func (s *Server) CreateVatRate(c *gin.Context) {
	var req catalogdomain.CreateVatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	rate, err := s.catalogSvc.CreateVatRate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rate)
}

func (s *Server) ListVatExemptions(c *gin.Context) {
	exemptions, err := s.catalogSvc.ListVatExemptions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vat_exemptions": exemptions})
}

func (s *Server) CreateVatExemption(c *gin.Context) {
	var req catalogdomain.CreateVatExemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	exemption, err := s.catalogSvc.CreateVatExemption(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exemption)
}

func (s *Server) ListPricingRules(c *gin.Context) {
	rules, err := s.catalogSvc.ListPricingRules(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing_rules": rules})
}

func (s *Server) CreatePricingRule(c *gin.Context) {
	var req catalogdomain.CreatePricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	rule, err := s.catalogSvc.CreatePricingRule(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}
