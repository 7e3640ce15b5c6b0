// README: Saved-route handlers: save, list with totals, delete.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YukiAminaka/cycle-route/internal/modules/routes"
)

type RoutesHandler struct {
	store *routes.Store
}

func NewRoutesHandler(store *routes.Store) *RoutesHandler {
	return &RoutesHandler{store: store}
}

// Save handles POST /api/routes.
func (h *RoutesHandler) Save(c *gin.Context) {
	var route routes.Route
	if err := c.ShouldBindJSON(&route); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	saved, err := h.store.Save(c.Request.Context(), route)
	if err != nil {
		writeRoutesError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, saved)
}

// List handles GET /api/routes.
func (h *RoutesHandler) List(c *gin.Context) {
	all, err := h.store.List(c.Request.Context())
	if err != nil {
		writeRoutesError(c, err)
		return
	}
	totals, err := h.store.Totals(c.Request.Context())
	if err != nil {
		writeRoutesError(c, err)
		return
	}
	if all == nil {
		all = []routes.Route{}
	}
	writeJSON(c, http.StatusOK, gin.H{"routes": all, "totals": totals})
}

// Delete handles DELETE /api/routes/:id.
func (h *RoutesHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing route id")
		return
	}
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		writeRoutesError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
