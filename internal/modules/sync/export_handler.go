package sync

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/response"
)

type ExportHandler struct {
	service *ExportService
}

func NewExportHandler(service *ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RegisterRoutes mounts the public feed endpoint. The URL is the only
// credential, so it stays outside the admin group.
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export/:token", h.Calendar)
}

// RegisterAdminRoutes mounts token minting for the admin panel.
func (h *ExportHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/apartments/:id/export-token", h.MintToken)
}

// Calendar serves GET /export/<token>.ics. The .ics suffix is optional; some
// OTAs require it in the URL, others strip it.
func (h *ExportHandler) Calendar(c *gin.Context) {
	token := strings.TrimSuffix(c.Param("token"), ".ics")

	body, err := h.service.Calendar(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrExportTokenNotFound) {
			response.NotFound(c, "Unknown calendar")
			return
		}
		response.Internal(c, "Failed to render calendar")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (h *ExportHandler) MintToken(c *gin.Context) {
	token, err := h.service.MintToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Internal(c, "Failed to mint export token")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"export_token": token})
}
