package usecase

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/convenuence/backend/internal/domain"
)

// VenueService orchestrates the places API client and the venue cache:
// network-first reads with cache fallback on failure, write-through caching of
// successful network results, and favorite-change notification. It owns no
// venue state of its own.
type VenueService struct {
	apiClient domain.VenueAPIClient
	cache     domain.VenueCacheRepository
	notifier  *favoriteNotifier
}

// NewVenueService creates a venue repository service with its dependencies.
func NewVenueService(apiClient domain.VenueAPIClient, cache domain.VenueCacheRepository) *VenueService {
	return &VenueService{
		apiClient: apiClient,
		cache:     cache,
		notifier:  newFavoriteNotifier(),
	}
}

// SearchVenues searches the places API for query around location. Successful
// results are stamped with favorite status, persisted, and indexed under the
// query text. On any API failure the last cached result list for the same
// query text is returned instead; if none exists the API failure propagates
// unchanged — a cache miss never masks the network error.
func (s *VenueService) SearchVenues(ctx context.Context, location domain.Coordinate, query string) ([]domain.Venue, error) {
	req := domain.NewSearchVenuesRequest(query, location)

	favoriteIDs, err := s.cache.FetchFavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}

	venues, apiErr := s.apiClient.SearchVenues(ctx, req)
	if apiErr != nil {
		log.Printf("[VenueService] Search %q failed, trying cache: %v", query, apiErr)
		return s.searchFallback(ctx, req, favoriteIDs, apiErr)
	}

	stamped := stampFavorites(venues, favoriteIDs)
	if err := s.cache.SaveVenues(ctx, stamped); err != nil {
		return nil, err
	}
	if err := s.cache.SaveSearchResults(ctx, req, collectIDs(stamped)); err != nil {
		return nil, err
	}
	return stamped, nil
}

// SearchVenuesFromCache answers query from the cache alone, with no network
// call. An unknown query returns an empty result, not an error; it is used to
// refresh a visible list after a favorite toggle.
func (s *VenueService) SearchVenuesFromCache(ctx context.Context, location domain.Coordinate, query string) ([]domain.Venue, error) {
	req := domain.NewSearchVenuesRequest(query, location)

	favoriteIDs, err := s.cache.FetchFavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.cache.FetchSearchResults(ctx, req)
	if errors.Is(err, domain.ErrCacheMiss) {
		return []domain.Venue{}, nil
	}
	if err != nil {
		return nil, err
	}

	venues, err := s.cache.FetchVenues(ctx, ids)
	if err != nil {
		return nil, err
	}
	return stampFavorites(venues, favoriteIDs), nil
}

// GetVenueDetails fetches the detail record plus photo metadata from the
// network, persists the combined record and returns it. On failure of either
// network call the last cached detail for id is returned; with no cached
// detail the original failure propagates.
func (s *VenueService) GetVenueDetails(ctx context.Context, id domain.VenueID) (*domain.VenueDetail, error) {
	favoriteIDs, err := s.cache.FetchFavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}

	detail, apiErr := s.apiClient.FetchVenueDetails(ctx, domain.FetchVenueDetailsRequest{ID: id})
	var photos []string
	if apiErr == nil {
		photos, apiErr = s.apiClient.FetchVenuePhotos(ctx, id)
	}
	if apiErr != nil {
		log.Printf("[VenueService] Details for %s failed, trying cache: %v", id, apiErr)
		cached, err := s.cache.FetchVenueDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		if cached == nil {
			return nil, apiErr
		}
		return cached, nil
	}

	combined := detail.WithFavorite(slices.Contains(favoriteIDs, id))
	combined.PhotoURLs = photos
	if err := s.cache.SaveVenueDetail(ctx, combined); err != nil {
		return nil, err
	}
	return &combined, nil
}

// GetFavorites resolves the favorites set against the venue cache. Favorites
// are a local-only concept; there is no network path.
func (s *VenueService) GetFavorites(ctx context.Context) ([]domain.Venue, error) {
	return s.cache.FetchFavoriteVenues(ctx)
}

// SaveFavorite marks id as favorite and signals subscribers.
func (s *VenueService) SaveFavorite(ctx context.Context, id domain.VenueID) error {
	if err := s.cache.SaveFavorite(ctx, id); err != nil {
		return err
	}
	s.notifier.notify()
	return nil
}

// RemoveFavorite unmarks id as favorite and signals subscribers.
func (s *VenueService) RemoveFavorite(ctx context.Context, id domain.VenueID) error {
	if err := s.cache.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	s.notifier.notify()
	return nil
}

// IsFavorite reports membership of id in the favorites set.
func (s *VenueService) IsFavorite(ctx context.Context, id domain.VenueID) (bool, error) {
	favoriteIDs, err := s.cache.FetchFavoriteIDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(favoriteIDs, id), nil
}

// SubscribeFavoriteChanges registers for the favorite-change broadcast.
func (s *VenueService) SubscribeFavoriteChanges() (<-chan struct{}, func()) {
	return s.notifier.subscribe()
}

// searchFallback resolves the cached id list for the request's query text. The
// original API error propagates when no list was ever recorded; a store
// failure during the fallback read propagates as itself.
func (s *VenueService) searchFallback(ctx context.Context, req domain.SearchVenuesRequest, favoriteIDs []domain.VenueID, apiErr error) ([]domain.Venue, error) {
	ids, err := s.cache.FetchSearchResults(ctx, req)
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, apiErr
	}
	if err != nil {
		return nil, err
	}

	venues, err := s.cache.FetchVenues(ctx, ids)
	if err != nil {
		return nil, err
	}
	return stampFavorites(venues, favoriteIDs), nil
}

// stampFavorites rewrites each venue's favorite flag from the favorites set.
func stampFavorites(venues []domain.Venue, favoriteIDs []domain.VenueID) []domain.Venue {
	stamped := make([]domain.Venue, 0, len(venues))
	for _, venue := range venues {
		stamped = append(stamped, venue.WithFavorite(slices.Contains(favoriteIDs, venue.ID)))
	}
	return stamped
}

func collectIDs(venues []domain.Venue) []domain.VenueID {
	ids := make([]domain.VenueID, 0, len(venues))
	for _, venue := range venues {
		ids = append(ids, venue.ID)
	}
	return ids
}
