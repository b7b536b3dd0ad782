package domain

import "context"

// KeyValueStore defines the primitive save/fetch/delete operations against a
// local store. Values are JSON-serialized. A missing key is not an error:
// Fetch reports it through the found flag.
type KeyValueStore interface {
	Save(ctx context.Context, key string, value any) error
	Fetch(ctx context.Context, key string, dest any) (found bool, err error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// VenueAPIClient defines the interface for the places provider. Returned
// venues and details carry IsFavorite == false; stamping is the repository
// service's job.
type VenueAPIClient interface {
	SearchVenues(ctx context.Context, req SearchVenuesRequest) ([]Venue, error)
	FetchVenueDetails(ctx context.Context, req FetchVenueDetailsRequest) (*VenueDetail, error)
	FetchVenuePhotos(ctx context.Context, id VenueID) ([]string, error)
}

// VenueCacheRepository is the single place venue data, detail data, the
// favorites set and search-result indices are read and written. It keeps the
// denormalized favorite flag on cached records consistent with the set.
type VenueCacheRepository interface {
	// Favorites. Add/remove are idempotent and rewrite the flag on any cached
	// venue or detail record sharing the id.
	SaveFavorite(ctx context.Context, id VenueID) error
	RemoveFavorite(ctx context.Context, id VenueID) error
	FetchFavoriteIDs(ctx context.Context) ([]VenueID, error)
	FetchFavoriteVenues(ctx context.Context) ([]Venue, error)

	// Venues. A nil ids slice means "all cached venues". Absent ids are
	// silently dropped; result order is not guaranteed to match input order.
	SaveVenue(ctx context.Context, venue Venue) error
	SaveVenues(ctx context.Context, venues []Venue) error
	FetchVenue(ctx context.Context, id VenueID) (*Venue, error)
	FetchVenues(ctx context.Context, ids []VenueID) ([]Venue, error)

	// Venue details. Same shape as venues, separate key namespace.
	SaveVenueDetail(ctx context.Context, detail VenueDetail) error
	FetchVenueDetail(ctx context.Context, id VenueID) (*VenueDetail, error)
	FetchVenueDetails(ctx context.Context, ids []VenueID) ([]VenueDetail, error)

	// Search-result index, keyed by the request's query text only.
	// FetchSearchResults returns ErrCacheMiss when no entry exists for the query.
	SaveSearchResults(ctx context.Context, req SearchVenuesRequest, ids []VenueID) error
	FetchSearchResults(ctx context.Context, req SearchVenuesRequest) ([]VenueID, error)
}

// VenueRepository is the network-first, cache-fallback surface consumed by
// delivery layers.
type VenueRepository interface {
	SearchVenues(ctx context.Context, location Coordinate, query string) ([]Venue, error)
	SearchVenuesFromCache(ctx context.Context, location Coordinate, query string) ([]Venue, error)
	GetVenueDetails(ctx context.Context, id VenueID) (*VenueDetail, error)
	GetFavorites(ctx context.Context) ([]Venue, error)
	SaveFavorite(ctx context.Context, id VenueID) error
	RemoveFavorite(ctx context.Context, id VenueID) error
	IsFavorite(ctx context.Context, id VenueID) (bool, error)

	// SubscribeFavoriteChanges registers for the payload-free favorite-change
	// broadcast. Subscribers re-query the repository on signal. The returned
	// func unsubscribes.
	SubscribeFavoriteChanges() (<-chan struct{}, func())
}
