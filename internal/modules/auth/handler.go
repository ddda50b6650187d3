package auth

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Password is required")
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid password")
			return
		}
		response.Internal(c, "Failed to log in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}
