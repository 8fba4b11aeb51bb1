package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"neargo/internal/delivery/http/helpers"
	"neargo/internal/domain"
	"neargo/internal/geo"
)

// DefaultRadiusKm applies when a center is given without an explicit radius.
const DefaultRadiusKm = 50

type DiscoverController struct {
	Logger  *slog.Logger
	Service domain.DiscoveryService
}

func NewDiscoverController(logger *slog.Logger, svc domain.DiscoveryService) *DiscoverController {
	return &DiscoverController{
		Logger:  logger,
		Service: svc,
	}
}

// SearchSuccessResponse is the success response envelope for GET /events.
type SearchSuccessResponse struct {
	Data  *domain.SearchResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Search godoc
// @Summary Search events across all sources
// @Description Merges the provider feed, user submissions, and the external feed, deduplicates near-identical entries, and filters by free text, category, and radius around a center point.
// @Tags events
// @Produce json
// @Param query query string false "Free-text filter over name, venue, and address"
// @Param category query string false "Exact category filter (case-insensitive)"
// @Param lat query number false "Center latitude; requires lon"
// @Param lon query number false "Center longitude; requires lat"
// @Param radius_km query number false "Radius in kilometers around the center (default 50)"
// @Param page query int false "0-based page index"
// @Param size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.SearchSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *DiscoverController) Search(w http.ResponseWriter, r *http.Request) {
	opts, ok := parseMatcherOptions(w, r)
	if !ok {
		return
	}
	page := helpers.ParsePagination(r)

	result, err := c.Service.Search(r.Context(), opts, page)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

func parseMatcherOptions(w http.ResponseWriter, r *http.Request) (domain.MatcherOptions, bool) {
	q := r.URL.Query()
	opts := domain.MatcherOptions{
		Query:    q.Get("query"),
		Category: q.Get("category"),
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if (latStr == "") != (lonStr == "") {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "lat and lon must be given together")
		return opts, false
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid lat")
			return opts, false
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid lon")
			return opts, false
		}
		opts.Center = &geo.Point{Lat: lat, Lon: lon}
		opts.RadiusKm = DefaultRadiusKm
		if s := q.Get("radius_km"); s != "" {
			radius, err := strconv.ParseFloat(s, 64)
			if err != nil || radius <= 0 {
				helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid radius_km")
				return opts, false
			}
			opts.RadiusKm = radius
		}
	}
	return opts, true
}
