// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YukiAminaka/cycle-route/internal/modules/routes"
	"github.com/YukiAminaka/cycle-route/internal/modules/search"
	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, waypoint.ErrInvalidCoordinate), errors.Is(err, waypoint.ErrIndexOutOfRange):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeSearchError(c *gin.Context, err error) {
	var statusErr *search.StatusError
	switch {
	case errors.As(err, &statusErr):
		// Surface the upstream status and message so the UI can show a
		// dismissable banner without guessing.
		writeJSON(c, http.StatusBadGateway, gin.H{
			"error":           "search provider error",
			"upstream_status": statusErr.Status,
			"message":         statusErr.Message,
		})
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeRoutesError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, routes.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
