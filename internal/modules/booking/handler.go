package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/response"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public booking endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
}

// RegisterAdminRoutes mounts booking management under the authenticated admin
// group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings", h.CreateManualBooking)
	rg.PATCH("/bookings/:id/status", h.UpdateStatus)
	rg.PATCH("/bookings/:id/prepayment", h.UpdatePrepayment)
	rg.PATCH("/bookings/:id/notes", h.UpdateNotes)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
	rg.GET("/stats", h.Stats)
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrApartmentNotFound):
		response.NotFound(c, "Apartment not found")
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrDatesUnavailable):
		response.Conflict(c, "DATES_UNAVAILABLE", "Selected dates are no longer available")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Conflict(c, "INVALID_TRANSITION", err.Error())
	default:
		response.Internal(c, fallback)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) CreateManualBooking(c *gin.Context) {
	var req CreateManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	b, err := h.service.CreateManualBooking(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	filter := repository.BookingFilter{
		ApartmentID: c.Query("apartment_id"),
		Status:      domain.BookingStatus(c.Query("status")),
	}
	bookings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking":        b,
		"prepaid_status": b.PrepaidStatus(),
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status), actorFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to update status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdatePrepayment(c *gin.Context) {
	var req UpdatePrepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	b, err := h.service.UpdatePrepayment(c.Request.Context(), c.Param("id"), req.PrepaidAmount, actorFrom(c))
	if err != nil {
		h.respondError(c, err, "Failed to update prepayment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"booking":        b,
		"prepaid_status": b.PrepaidStatus(),
	})
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes); err != nil {
		h.respondError(c, err, "Failed to update notes")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Query("apartment_id"))
	if err != nil {
		response.Internal(c, "Failed to compute stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// actorFrom reads the admin role the auth middleware stored on the context.
func actorFrom(c *gin.Context) string {
	if v, ok := c.Get("role"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "admin"
}
