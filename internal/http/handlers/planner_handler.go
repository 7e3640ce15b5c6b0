// README: Planner handlers for waypoint mutations and cue-sheet reads.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YukiAminaka/cycle-route/internal/modules/cuesheet"
	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

type PlannerHandler struct {
	session *waypoint.Session
}

func NewPlannerHandler(session *waypoint.Session) *PlannerHandler {
	return &PlannerHandler{session: session}
}

type addWaypointReq struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// AddWaypoint handles POST /api/planner/waypoints.
func (h *PlannerHandler) AddWaypoint(c *gin.Context) {
	var req addWaypointReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.session.Add(types.LngLat{Lng: req.Lng, Lat: req.Lat}); err != nil {
		writePlannerError(c, err)
		return
	}
	h.writeState(c, http.StatusCreated)
}

// RemoveWaypoint handles DELETE /api/planner/waypoints/:index.
func (h *PlannerHandler) RemoveWaypoint(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid waypoint index")
		return
	}
	if err := h.session.Remove(index); err != nil {
		writePlannerError(c, err)
		return
	}
	h.writeState(c, http.StatusOK)
}

// Undo handles POST /api/planner/undo.
func (h *PlannerHandler) Undo(c *gin.Context) {
	h.session.Undo()
	h.writeState(c, http.StatusOK)
}

// Clear handles POST /api/planner/clear.
func (h *PlannerHandler) Clear(c *gin.Context) {
	h.session.ClearAll()
	h.writeState(c, http.StatusOK)
}

// State handles GET /api/planner.
func (h *PlannerHandler) State(c *gin.Context) {
	h.writeState(c, http.StatusOK)
}

// CueSheet handles GET /api/planner/cuesheet.
func (h *PlannerHandler) CueSheet(c *gin.Context) {
	writeJSON(c, http.StatusOK, cuesheet.Build(h.session.Cues()))
}

func (h *PlannerHandler) writeState(c *gin.Context, status int) {
	writeJSON(c, status, gin.H{
		"waypoints": h.session.Waypoints(),
		"cues":      h.session.Cues(),
		"ready":     h.session.Attached(),
	})
}
