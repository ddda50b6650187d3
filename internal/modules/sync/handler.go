package sync

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/response"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/repository"
)

type Handler struct {
	service  *Service
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Admin endpoints sit behind the JWT middleware; the origin
			// check adds nothing for the dashboard use case.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterAdminRoutes mounts the sync surface under the authenticated admin
// group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/ics-sources", h.ListSources)
	rg.POST("/ics-sources", h.AddSource)
	rg.PATCH("/ics-sources/:id", h.UpdateSource)
	rg.DELETE("/ics-sources/:id", h.DeleteSource)
	rg.POST("/ics-sources/:id/sync", h.SyncSource)

	rg.POST("/sync", h.SyncAll)
	rg.GET("/sync/logs", h.Logs)
	rg.GET("/sync/ws", h.Events)
}

func (h *Handler) ListSources(c *gin.Context) {
	sources, err := h.service.ListSources(c.Request.Context())
	if err != nil {
		response.Internal(c, "Failed to list ICS sources")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sources": sources})
}

func (h *Handler) AddSource(c *gin.Context) {
	var req AddSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	src, err := h.service.AddSource(c.Request.Context(), req.ApartmentID, req.SourceName, req.IcsURL)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSource) {
			response.Conflict(c, "DUPLICATE_SOURCE", "Source already exists for this apartment")
			return
		}
		response.Internal(c, "Failed to add ICS source")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"source": src})
}

func (h *Handler) UpdateSource(c *gin.Context) {
	var req UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	err := h.service.UpdateSource(c.Request.Context(), c.Param("id"), repository.SourceUpdate{
		IcsURL:   req.IcsURL,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Source not found")
			return
		}
		response.Internal(c, "Failed to update ICS source")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) DeleteSource(c *gin.Context) {
	if err := h.service.DeleteSource(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Source not found")
			return
		}
		response.Internal(c, "Failed to delete ICS source")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) SyncSource(c *gin.Context) {
	result, err := h.service.SyncByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Source not found")
			return
		}
		response.Internal(c, "Failed to sync source")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result})
}

func (h *Handler) SyncAll(c *gin.Context) {
	filter := repository.SourceFilter{
		ApartmentID: c.Query("apartment_id"),
		SourceName:  c.Query("source"),
	}
	results, err := h.service.SyncAll(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, "Failed to run sync")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

func (h *Handler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.service.Logs(c.Request.Context(), limit)
	if err != nil {
		response.Internal(c, "Failed to fetch sync logs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

// Events upgrades to a websocket and streams SourceResult messages until
// the client disconnects.
func (h *Handler) Events(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.Register(conn)

	// Reader loop only detects disconnect; clients never send payloads.
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
