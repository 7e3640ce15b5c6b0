// README: Search handlers for suggest/retrieve with session token lifecycle.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YukiAminaka/cycle-route/internal/modules/search"
	"github.com/YukiAminaka/cycle-route/internal/types"
)

type SearchHandler struct {
	client *search.Client
	tokens *search.TokenManager
}

func NewSearchHandler(client *search.Client) *SearchHandler {
	return &SearchHandler{client: client, tokens: search.NewTokenManager()}
}

// Suggest handles GET /api/search/suggest?q=...&lng=...&lat=...
// A missing provider credential degrades to an empty suggestion list.
func (h *SearchHandler) Suggest(c *gin.Context) {
	q := c.Query("q")

	opts := search.SuggestOptions{
		Country:  c.Query("country"),
		Language: c.Query("language"),
	}
	if limit := c.Query("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			opts.Limit = n
		}
	}
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng == nil && errLat == nil {
		opts.Proximity = &types.LngLat{Lng: lng, Lat: lat}
	}

	suggestions, err := h.client.Suggest(c.Request.Context(), q, h.tokens.Current(), opts)
	if errors.Is(err, search.ErrNoAccessToken) {
		suggestions, err = nil, nil
	}
	if err != nil {
		writeSearchError(c, err)
		return
	}
	if suggestions == nil {
		suggestions = []search.Suggestion{}
	}
	writeJSON(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

type retrieveReq struct {
	MapboxID string `json:"mapbox_id"`
}

// Retrieve handles POST /api/search/retrieve. On success the session token
// is renewed so the next search interaction is billed separately.
func (h *SearchHandler) Retrieve(c *gin.Context) {
	var req retrieveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.MapboxID == "" {
		writeError(c, http.StatusBadRequest, "missing mapbox_id")
		return
	}

	place, err := h.client.Retrieve(c.Request.Context(), req.MapboxID, h.tokens.Current())
	if errors.Is(err, search.ErrNoAccessToken) {
		writeJSON(c, http.StatusOK, gin.H{"place": nil})
		return
	}
	if err != nil {
		writeSearchError(c, err)
		return
	}
	if place != nil {
		h.tokens.Renew()
	}
	writeJSON(c, http.StatusOK, gin.H{"place": place})
}
