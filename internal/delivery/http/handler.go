package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/convenuence/backend/internal/domain"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	venues domain.VenueRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(venues domain.VenueRepository) *Handler {
	return &Handler{venues: venues}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "convenuence-backend",
		"version": "1.0.0",
	})
}

// SearchVenues handles venue search requests, network-first with cache fallback
func (h *Handler) SearchVenues(c *gin.Context) {
	query, location, ok := searchParams(c)
	if !ok {
		return
	}

	venues, err := h.venues.SearchVenues(c.Request.Context(), location, query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": venues})
}

// SearchVenuesFromCache answers a search from the local cache only
func (h *Handler) SearchVenuesFromCache(c *gin.Context) {
	query, location, ok := searchParams(c)
	if !ok {
		return
	}

	venues, err := h.venues.SearchVenuesFromCache(c.Request.Context(), location, query)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": venues})
}

// GetVenueDetails returns the detail record for one venue
func (h *Handler) GetVenueDetails(c *gin.Context) {
	id := domain.VenueID(c.Param("id"))

	detail, err := h.venues.GetVenueDetails(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListFavorites returns the favorite venues resolvable from the cache
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.venues.GetFavorites(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": favorites})
}

// GetFavorite reports whether one venue id is favorited
func (h *Handler) GetFavorite(c *gin.Context) {
	id := domain.VenueID(c.Param("id"))

	isFavorite, err := h.venues.IsFavorite(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isFavorite": isFavorite})
}

// SaveFavorite marks a venue id as favorite
func (h *Handler) SaveFavorite(c *gin.Context) {
	id := domain.VenueID(c.Param("id"))

	if err := h.venues.SaveFavorite(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFavorite unmarks a venue id as favorite
func (h *Handler) RemoveFavorite(c *gin.Context) {
	id := domain.VenueID(c.Param("id"))

	if err := h.venues.RemoveFavorite(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// searchParams parses and validates the common search query parameters. On
// validation failure it writes a 400 response and returns ok == false.
func searchParams(c *gin.Context) (string, domain.Coordinate, bool) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return "", domain.Coordinate{}, false
	}

	latitude, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat parameter must be a decimal degree value"})
		return "", domain.Coordinate{}, false
	}
	longitude, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng parameter must be a decimal degree value"})
		return "", domain.Coordinate{}, false
	}

	return query, domain.Coordinate{Latitude: latitude, Longitude: longitude}, true
}

// renderError maps domain errors to HTTP status codes. Upstream failures are
// bad-gateway; everything else is internal.
func renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNetwork),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrDecoding),
		errors.Is(err, domain.ErrMaxRetriesExceeded),
		errors.Is(err, domain.ErrVenueAPI):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
