package availability

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public availability surface on the apartments
// group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/apartments/:id/availability", h.CheckAvailability)
	rg.GET("/apartments/:id/blocked", h.BlockedRanges)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	rng := domain.DateRange{
		CheckIn:  c.Query("check_in"),
		CheckOut: c.Query("check_out"),
	}

	available, err := h.service.IsAvailable(c.Request.Context(), c.Param("id"), rng)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.ValidationError(c, "check_in and check_out must be valid dates with check_out after check_in")
		case errors.Is(err, ErrApartmentNotFound):
			response.NotFound(c, "Apartment not found")
		default:
			response.Internal(c, "Failed to check availability")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"available": available,
		"check_in":  rng.CheckIn,
		"check_out": rng.CheckOut,
	})
}

func (h *Handler) BlockedRanges(c *gin.Context) {
	blocked, err := h.service.BlockedRanges(c.Request.Context(), c.Param("id"), c.Query("from"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.ValidationError(c, "from must be a valid date")
		case errors.Is(err, ErrApartmentNotFound):
			response.NotFound(c, "Apartment not found")
		default:
			response.Internal(c, "Failed to load blocked ranges")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"blocked": blocked})
}
