package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalog.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/apartments", h.ListApartments)
	rg.GET("/apartments/:id", h.GetApartment)
}

// RegisterAdminRoutes mounts catalog management under the authenticated admin
// group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/apartments", h.ListAllApartments)
	rg.POST("/apartments", h.CreateApartment)
	rg.PATCH("/apartments/:id", h.UpdateApartment)
	rg.DELETE("/apartments/:id", h.DeleteApartment)
}

func (h *Handler) ListApartments(c *gin.Context) {
	apartments, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list apartments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartments": apartments})
}

func (h *Handler) GetApartment(c *gin.Context) {
	apt, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrApartmentNotFound) {
			response.NotFound(c, "Apartment not found")
			return
		}
		response.Internal(c, "Failed to fetch apartment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartment": apt})
}

func (h *Handler) ListAllApartments(c *gin.Context) {
	apartments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list apartments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartments": apartments})
}

func (h *Handler) CreateApartment(c *gin.Context) {
	var req CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	apt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Internal(c, "Failed to create apartment")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"apartment": apt})
}

func (h *Handler) UpdateApartment(c *gin.Context) {
	var req UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	apt, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrApartmentNotFound) {
			response.NotFound(c, "Apartment not found")
			return
		}
		response.Internal(c, "Failed to update apartment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"apartment": apt})
}

func (h *Handler) DeleteApartment(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrApartmentNotFound) {
			response.NotFound(c, "Apartment not found")
			return
		}
		response.Internal(c, "Failed to delete apartment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
