package domain

// Default search parameters matching the provider's sensible bounds.
const (
	DefaultSearchRadius = 3000 // meters
	DefaultSearchLimit  = 50
)

// SearchVenuesRequest captures one venue search. It serves two roles: the API
// client builds the outgoing request from it, and the cache repository derives
// the search-index key from it. Only Query participates in the cache key;
// location, radius, limit and offset are deliberately excluded.
type SearchVenuesRequest struct {
	Query    string
	Location Coordinate
	Radius   int
	Limit    int
	Offset   int
}

// NewSearchVenuesRequest builds a search request with default radius and limit.
func NewSearchVenuesRequest(query string, location Coordinate) SearchVenuesRequest {
	return SearchVenuesRequest{
		Query:    query,
		Location: location,
		Radius:   DefaultSearchRadius,
		Limit:    DefaultSearchLimit,
	}
}

// FetchVenueDetailsRequest identifies the venue whose detail record is wanted.
type FetchVenueDetailsRequest struct {
	ID VenueID
}
