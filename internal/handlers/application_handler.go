package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/dtos"
	"github.com/tracklet-app/tracklet/internal/middleware"
	"github.com/tracklet-app/tracklet/internal/models"
	"github.com/tracklet-app/tracklet/internal/services"
	"github.com/tracklet-app/tracklet/internal/store"
)

// ApplicationHandler serves the applications pages' data contracts and the
// mutating CRUD endpoints.
type ApplicationHandler struct {
	Apps     *services.ApplicationService
	Profiles *services.ProfileService
	Stores   *store.Registry
	Log      *zap.Logger
}

func NewApplicationHandler(apps *services.ApplicationService, profiles *services.ProfileService, stores *store.Registry, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Apps:     apps,
		Profiles: profiles,
		Stores:   stores,
		Log:      log,
	}
}

// Dashboard is the GET /dashboard view data: the five most recent
// applications plus status counts and the profile for the greeting.
func (h *ApplicationHandler) Dashboard(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthenticated.Error()})
		return
	}

	st := h.Stores.For(userID)
	if err := st.Load(c.Request.Context(), store.Options{Mode: store.ModeSummary}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching applications: " + err.Error()})
		return
	}
	snap := st.Snapshot()

	profile, err := h.Profiles.Fetch(c.Request.Context(), userID)
	if err != nil {
		// The greeting is decoration; the dashboard still renders without it.
		h.Log.Warn("profile fetch failed", zap.Error(err))
	}

	apps, err := h.Apps.List(c.Request.Context(), userID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching applications: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recent":        snap.Applications,
		"is_loading":    snap.IsLoading,
		"skeleton_rows": snap.SkeletonRows,
		"status_counts": statusCounts(apps),
		"total":         len(apps),
		"profile":       profile,
	})
}

// List is the GET /applications view data. Filtering is a pure transform
// over the published snapshot; the store itself never filters.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthenticated.Error()})
		return
	}

	st := h.Stores.For(userID)
	if err := st.Load(c.Request.Context(), store.Options{Mode: store.ModeFull}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching applications: " + err.Error()})
		return
	}
	snap := st.Snapshot()

	query := c.Query("q")
	status := c.DefaultQuery("status", store.StatusAll)

	c.JSON(http.StatusOK, gin.H{
		"applications":  store.Filter(snap.Applications, query, status),
		"is_loading":    snap.IsLoading,
		"skeleton_rows": snap.SkeletonRows,
		"total":         len(snap.Applications),
	})
}

// Detail is the GET /applications/:id view data.
func (h *ApplicationHandler) Detail(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	app, err := h.Apps.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

// Create is POST /api/v1/applications. After the insert the caller's store
// is refreshed with an extra skeleton row reserved, so the refetch already
// has space for the new entry.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Apps.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.refreshStore(c, userID, store.Options{
		Mode:            store.Mode(c.DefaultQuery("view", string(store.ModeFull))),
		ReserveExtraRow: true,
	})
	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// UpdateNotes is PATCH /api/v1/applications/:id/notes.
func (h *ApplicationHandler) UpdateNotes(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dtos.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if err := h.Apps.UpdateNotes(c.Request.Context(), userID, c.Param("id"), req.Notes); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete is DELETE /api/v1/applications/:id.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.Apps.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	h.refreshStore(c, userID, store.Options{Mode: store.ModeFull})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analytics is the GET /analytics view data: status distribution for the
// status chart and conversion funnel.
func (h *ApplicationHandler) Analytics(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	apps, err := h.Apps.List(c.Request.Context(), userID, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_counts": statusCounts(apps),
		"total":         len(apps),
	})
}

// refreshStore reloads the caller's store after a successful mutation. The
// mutation already succeeded, so a failed refetch is logged, not surfaced.
func (h *ApplicationHandler) refreshStore(c *gin.Context, userID string, opts store.Options) {
	if err := h.Stores.For(userID).Load(c.Request.Context(), opts); err != nil {
		h.Log.Warn("store refresh failed", zap.Error(err))
	}
}

// statusCounts tallies applications per status, with every enumerated
// status present even when zero.
func statusCounts(apps []models.Application) map[string]int {
	counts := make(map[string]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}

func (h *ApplicationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
