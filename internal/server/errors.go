package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/limanops/tarife/internal/catalog/domain"
	"github.com/limanops/tarife/internal/pricing"
	ratingdomain "github.com/limanops/tarife/internal/rating/domain"
	tariffdomain "github.com/limanops/tarife/internal/tariff/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ratingdomain.ErrNoPriceDefined):
		// Expected outcome, not a server fault: the date has no usable price.
		return http.StatusNotFound, errorPayload{
			Type:    "no_price_defined",
			Message: "no price defined for the service at the requested date",
		}
	case errors.Is(err, ratingdomain.ErrAmbiguousTariff):
		return http.StatusConflict, errorPayload{
			Type:    "ambiguous_tariff",
			Message: "more than one active tariff covers the requested date",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, ratingdomain.ErrInvalidID),
		errors.Is(err, ratingdomain.ErrInvalidDate):
		return true
	case isCatalogValidationError(err), isTariffValidationError(err):
		return true
	default:
		return false
	}
}

func isCatalogValidationError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidCode),
		errors.Is(err, catalogdomain.ErrInvalidUnit),
		errors.Is(err, catalogdomain.ErrInvalidVatRate),
		errors.Is(err, catalogdomain.ErrInvalidCalculationType),
		errors.Is(err, catalogdomain.ErrInvalidMinQuantity),
		errors.Is(err, catalogdomain.ErrMissingPackagePrice),
		errors.Is(err, catalogdomain.ErrInvalidPackagePrice):
		return true
	default:
		return false
	}
}

func isTariffValidationError(err error) bool {
	switch {
	case errors.Is(err, tariffdomain.ErrInvalidID),
		errors.Is(err, tariffdomain.ErrInvalidCurrency),
		errors.Is(err, tariffdomain.ErrInvalidValidity),
		errors.Is(err, tariffdomain.ErrInvalidAdjustmentMode),
		errors.Is(err, tariffdomain.ErrInvalidTargetStatus),
		errors.Is(err, tariffdomain.ErrMissingAdjustmentValue),
		errors.Is(err, tariffdomain.ErrNegativeResultingPrice),
		errors.Is(err, tariffdomain.ErrInvalidUnitPrice):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrItemNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, tariffdomain.ErrInvalidState),
		errors.Is(err, tariffdomain.ErrIncompletePricing),
		errors.Is(err, tariffdomain.ErrNotEditable),
		errors.Is(err, tariffdomain.ErrDuplicateCode),
		errors.Is(err, catalogdomain.ErrDuplicateCode):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasPrefix(code, "missing_") {
		return strings.TrimPrefix(code, "missing_")
	}
	return ""
}
