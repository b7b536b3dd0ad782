package venuecache

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/convenuence/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Key layout in the underlying store. Favorites and the search index live
// under fixed keys; venues and details get one key per id so point lookups
// stay cheap. The search index is a single query->ids map rather than one key
// per query to avoid unbounded key proliferation.
const (
	favoritesKey         = "favoriteVenueIds"
	venueKeyPrefix       = "venue_"
	venueDetailKeyPrefix = "venueDetail_"
	searchResultsKey     = "searchResults"
)

var multiSpacePattern = regexp.MustCompile(`\s+`)

// Repository is the single owner of persisted venue data: the favorites set,
// per-venue and per-detail records, and per-query search-result id lists. It
// keeps the denormalized favorite flag on cached records in sync with the
// favorites set. The three writes behind a favorite change are sequential and
// not atomic; a failure mid-sequence can leave a cached record's flag stale
// until the record is next upserted.
type Repository struct {
	store domain.KeyValueStore
}

// NewRepository creates a venue cache repository on top of store.
func NewRepository(store domain.KeyValueStore) *Repository {
	return &Repository{store: store}
}

// SaveFavorite adds id to the favorites set (idempotent) and rewrites the
// favorite flag on any cached venue and detail record with that id.
func (r *Repository) SaveFavorite(ctx context.Context, id domain.VenueID) error {
	ids, err := r.FetchFavoriteIDs(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(ids, id) {
		ids = append(ids, id)
		if err := r.store.Save(ctx, favoritesKey, ids); err != nil {
			return err
		}
	}

	if err := r.updateVenueFavoriteFlag(ctx, id, true); err != nil {
		return err
	}
	return r.updateVenueDetailFavoriteFlag(ctx, id, true)
}

// RemoveFavorite removes id from the favorites set (idempotent) and rewrites
// the favorite flag on any cached venue and detail record with that id.
func (r *Repository) RemoveFavorite(ctx context.Context, id domain.VenueID) error {
	ids, err := r.FetchFavoriteIDs(ctx)
	if err != nil {
		return err
	}
	ids = slices.DeleteFunc(ids, func(existing domain.VenueID) bool { return existing == id })
	if err := r.store.Save(ctx, favoritesKey, ids); err != nil {
		return err
	}

	if err := r.updateVenueFavoriteFlag(ctx, id, false); err != nil {
		return err
	}
	return r.updateVenueDetailFavoriteFlag(ctx, id, false)
}

// FetchFavoriteIDs returns the favorites set in insertion order.
func (r *Repository) FetchFavoriteIDs(ctx context.Context) ([]domain.VenueID, error) {
	var ids []domain.VenueID
	if _, err := r.store.Fetch(ctx, favoritesKey, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []domain.VenueID{}
	}
	return ids, nil
}

// FetchFavoriteVenues resolves the favorites set against the venue cache.
// Favorited ids with no cached venue record are dropped.
func (r *Repository) FetchFavoriteVenues(ctx context.Context) ([]domain.Venue, error) {
	ids, err := r.FetchFavoriteIDs(ctx)
	if err != nil {
		return nil, err
	}
	return r.FetchVenues(ctx, ids)
}

// SaveVenue upserts one venue record under its own key.
func (r *Repository) SaveVenue(ctx context.Context, venue domain.Venue) error {
	return r.store.Save(ctx, venueKey(venue.ID), venue)
}

// SaveVenues upserts many venue records. The full existing set is read,
// unioned with the incoming venues (incoming wins on id collision) and every
// record is rewritten under its own key.
func (r *Repository) SaveVenues(ctx context.Context, venues []domain.Venue) error {
	existing, err := r.fetchAllVenues(ctx)
	if err != nil {
		return err
	}

	merged := make(map[domain.VenueID]domain.Venue, len(existing)+len(venues))
	for _, venue := range existing {
		merged[venue.ID] = venue
	}
	for _, venue := range venues {
		merged[venue.ID] = venue
	}

	for id, venue := range merged {
		if err := r.store.Save(ctx, venueKey(id), venue); err != nil {
			return err
		}
	}
	return nil
}

// FetchVenue returns the cached venue record for id, or nil when none exists.
func (r *Repository) FetchVenue(ctx context.Context, id domain.VenueID) (*domain.Venue, error) {
	var venue domain.Venue
	found, err := r.store.Fetch(ctx, venueKey(id), &venue)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &venue, nil
}

// FetchVenues resolves ids against the venue cache with one concurrent lookup
// per id. Absent ids are silently dropped and result order is not guaranteed.
// A nil ids slice returns every cached venue.
func (r *Repository) FetchVenues(ctx context.Context, ids []domain.VenueID) ([]domain.Venue, error) {
	if ids == nil {
		return r.fetchAllVenues(ctx)
	}
	return fanOutFetch(ctx, ids, r.FetchVenue)
}

// SaveVenueDetail upserts one venue detail record under its own key.
func (r *Repository) SaveVenueDetail(ctx context.Context, detail domain.VenueDetail) error {
	return r.store.Save(ctx, venueDetailKey(detail.ID), detail)
}

// FetchVenueDetail returns the cached detail record for id, or nil when none
// exists.
func (r *Repository) FetchVenueDetail(ctx context.Context, id domain.VenueID) (*domain.VenueDetail, error) {
	var detail domain.VenueDetail
	found, err := r.store.Fetch(ctx, venueDetailKey(id), &detail)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &detail, nil
}

// FetchVenueDetails mirrors FetchVenues for the detail namespace.
func (r *Repository) FetchVenueDetails(ctx context.Context, ids []domain.VenueID) ([]domain.VenueDetail, error) {
	if ids == nil {
		return r.fetchAllVenueDetails(ctx)
	}
	return fanOutFetch(ctx, ids, r.FetchVenueDetail)
}

// SaveSearchResults records the ordered id list for the request's query,
// overwriting any prior entry for the same query text.
func (r *Repository) SaveSearchResults(ctx context.Context, req domain.SearchVenuesRequest, ids []domain.VenueID) error {
	results, err := r.fetchAllSearchResults(ctx)
	if err != nil {
		return err
	}
	results[normalizeQuery(req.Query)] = ids
	return r.store.Save(ctx, searchResultsKey, results)
}

// FetchSearchResults returns the id list recorded for the request's query
// text, or ErrCacheMiss when no search for that text has been recorded.
// Location, radius, limit and offset do not participate in the lookup.
func (r *Repository) FetchSearchResults(ctx context.Context, req domain.SearchVenuesRequest) ([]domain.VenueID, error) {
	results, err := r.fetchAllSearchResults(ctx)
	if err != nil {
		return nil, err
	}
	ids, ok := results[normalizeQuery(req.Query)]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return ids, nil
}

// updateVenueFavoriteFlag rewrites the flag on the cached venue record, if
// one exists. Missing records are skipped, not created.
func (r *Repository) updateVenueFavoriteFlag(ctx context.Context, id domain.VenueID, isFavorite bool) error {
	venue, err := r.FetchVenue(ctx, id)
	if err != nil || venue == nil {
		return err
	}
	return r.SaveVenue(ctx, venue.WithFavorite(isFavorite))
}

func (r *Repository) updateVenueDetailFavoriteFlag(ctx context.Context, id domain.VenueID, isFavorite bool) error {
	detail, err := r.FetchVenueDetail(ctx, id)
	if err != nil || detail == nil {
		return err
	}
	return r.SaveVenueDetail(ctx, detail.WithFavorite(isFavorite))
}

func (r *Repository) fetchAllVenues(ctx context.Context) ([]domain.Venue, error) {
	keys, err := r.store.Keys(ctx, venueKeyPrefix)
	if err != nil {
		return nil, err
	}

	venues := make([]domain.Venue, 0, len(keys))
	for _, key := range keys {
		var venue domain.Venue
		found, err := r.store.Fetch(ctx, key, &venue)
		if err != nil {
			return nil, err
		}
		if found {
			venues = append(venues, venue)
		}
	}
	return venues, nil
}

func (r *Repository) fetchAllVenueDetails(ctx context.Context) ([]domain.VenueDetail, error) {
	keys, err := r.store.Keys(ctx, venueDetailKeyPrefix)
	if err != nil {
		return nil, err
	}

	details := make([]domain.VenueDetail, 0, len(keys))
	for _, key := range keys {
		var detail domain.VenueDetail
		found, err := r.store.Fetch(ctx, key, &detail)
		if err != nil {
			return nil, err
		}
		if found {
			details = append(details, detail)
		}
	}
	return details, nil
}

func (r *Repository) fetchAllSearchResults(ctx context.Context) (map[string][]domain.VenueID, error) {
	results := make(map[string][]domain.VenueID)
	if _, err := r.store.Fetch(ctx, searchResultsKey, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// fanOutFetch issues one lookup per id and gathers the non-nil results. The
// fan-out width is unbounded; a lookup error fails the whole batch.
func fanOutFetch[T any](ctx context.Context, ids []domain.VenueID, fetch func(context.Context, domain.VenueID) (*T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mutex sync.Mutex
	results := make([]T, 0, len(ids))

	for _, id := range ids {
		id := id
		g.Go(func() error {
			value, err := fetch(ctx, id)
			if err != nil {
				return err
			}
			if value != nil {
				mutex.Lock()
				results = append(results, *value)
				mutex.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// venueKey and venueDetailKey derive the store key for a record id.
func venueKey(id domain.VenueID) string {
	return venueKeyPrefix + string(id)
}

func venueDetailKey(id domain.VenueID) string {
	return venueDetailKeyPrefix + string(id)
}

// normalizeQuery canonicalizes query text for search-index keying so that
// "Pizza " and "pizza" share an entry.
func normalizeQuery(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	return multiSpacePattern.ReplaceAllString(query, " ")
}
