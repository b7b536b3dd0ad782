package venuecache

import (
	"context"
	"testing"

	"github.com/convenuence/backend/internal/domain"
	"github.com/convenuence/backend/internal/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() *Repository {
	return NewRepository(kvstore.NewMemoryStore())
}

func venueIDs(venues []domain.Venue) []domain.VenueID {
	ids := make([]domain.VenueID, 0, len(venues))
	for _, venue := range venues {
		ids = append(ids, venue.ID)
	}
	return ids
}

func TestSaveFavorite_Idempotent(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveFavorite(ctx, "p1"))
	require.NoError(t, repo.SaveFavorite(ctx, "p1"))

	ids, err := repo.FetchFavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p1"}, ids)
}

func TestRemoveFavorite(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveFavorite(ctx, "p1"))
	require.NoError(t, repo.SaveFavorite(ctx, "p2"))
	require.NoError(t, repo.RemoveFavorite(ctx, "p1"))

	ids, err := repo.FetchFavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p2"}, ids)

	// removing an id that is not favorited is a no-op
	require.NoError(t, repo.RemoveFavorite(ctx, "p1"))
}

func TestFavoriteFlagPropagation(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p1", Name: "Pizza Bar"}))
	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p2", Name: "Untouched"}))
	require.NoError(t, repo.SaveVenueDetail(ctx, domain.VenueDetail{ID: "p1", Name: "Pizza Bar"}))

	require.NoError(t, repo.SaveFavorite(ctx, "p1"))

	venue, err := repo.FetchVenue(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, venue)
	assert.True(t, venue.IsFavorite)

	detail, err := repo.FetchVenueDetail(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.True(t, detail.IsFavorite)

	untouched, err := repo.FetchVenue(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, untouched)
	assert.False(t, untouched.IsFavorite)

	require.NoError(t, repo.RemoveFavorite(ctx, "p1"))

	venue, err = repo.FetchVenue(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, venue.IsFavorite)

	detail, err = repo.FetchVenueDetail(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, detail.IsFavorite)
}

func TestSaveFavorite_UncachedRecordIsSkipped(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	// no venue or detail cached for this id; only the set changes
	require.NoError(t, repo.SaveFavorite(ctx, "ghost"))

	ids, err := repo.FetchFavoriteIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, domain.VenueID("ghost"))

	venue, err := repo.FetchVenue(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, venue)
}

func TestFetchFavoriteVenues_DropsUncachedIDs(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p1", Name: "Pizza Bar"}))
	require.NoError(t, repo.SaveFavorite(ctx, "p1"))
	require.NoError(t, repo.SaveFavorite(ctx, "never-cached"))

	favorites, err := repo.FetchFavoriteVenues(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, domain.VenueID("p1"), favorites[0].ID)
	assert.True(t, favorites[0].IsFavorite)
}

func TestSaveVenues_UnionsWithExisting(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p1", Name: "Old Name"}))
	require.NoError(t, repo.SaveVenues(ctx, []domain.Venue{
		{ID: "p1", Name: "New Name"},
		{ID: "p2", Name: "Second"},
	}))

	all, err := repo.FetchVenues(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.VenueID{"p1", "p2"}, venueIDs(all))

	updated, err := repo.FetchVenue(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestFetchVenues_ByIDsDropsAbsent(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenues(ctx, []domain.Venue{
		{ID: "p1", Name: "First"},
		{ID: "p2", Name: "Second"},
	}))

	venues, err := repo.FetchVenues(ctx, []domain.VenueID{"p1", "missing", "p2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.VenueID{"p1", "p2"}, venueIDs(venues))
}

func TestFetchVenues_EmptyIDList(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p1"}))

	// empty (non-nil) means "these ids", not "all"
	venues, err := repo.FetchVenues(ctx, []domain.VenueID{})
	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestVenueDetails_SeparateNamespace(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveVenue(ctx, domain.Venue{ID: "p1", Name: "Venue Record"}))
	require.NoError(t, repo.SaveVenueDetail(ctx, domain.VenueDetail{ID: "p1", Name: "Detail Record"}))

	details, err := repo.FetchVenueDetails(ctx, nil)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Detail Record", details[0].Name)

	venues, err := repo.FetchVenues(ctx, nil)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Venue Record", venues[0].Name)
}

func TestSearchResults_RoundTrip(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()
	req := domain.NewSearchVenuesRequest("pizza", domain.Coordinate{Latitude: 1, Longitude: 2})

	_, err := repo.FetchSearchResults(ctx, req)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, repo.SaveSearchResults(ctx, req, []domain.VenueID{"p1", "p2"}))

	ids, err := repo.FetchSearchResults(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p1", "p2"}, ids)
}

func TestSearchResults_KeyedByQueryTextOnly(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	saved := domain.NewSearchVenuesRequest("pizza", domain.Coordinate{Latitude: 40.7, Longitude: -74.0})
	require.NoError(t, repo.SaveSearchResults(ctx, saved, []domain.VenueID{"p1"}))

	// same query from another location, radius and offset hits the same entry
	other := domain.SearchVenuesRequest{Query: "pizza", Location: domain.Coordinate{Latitude: 51.5, Longitude: 0}, Radius: 100, Limit: 5, Offset: 10}
	ids, err := repo.FetchSearchResults(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p1"}, ids)
}

func TestSearchResults_NormalizedQueryKey(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveSearchResults(ctx,
		domain.NewSearchVenuesRequest("  Pizza   Bar ", domain.Coordinate{}), []domain.VenueID{"p1"}))

	ids, err := repo.FetchSearchResults(ctx,
		domain.NewSearchVenuesRequest("pizza bar", domain.Coordinate{}))
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p1"}, ids)
}

func TestSearchResults_OverwritesPriorEntry(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()
	req := domain.NewSearchVenuesRequest("pizza", domain.Coordinate{})

	require.NoError(t, repo.SaveSearchResults(ctx, req, []domain.VenueID{"p1"}))
	require.NoError(t, repo.SaveSearchResults(ctx, req, []domain.VenueID{"p2", "p3"}))

	ids, err := repo.FetchSearchResults(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p2", "p3"}, ids)

	// other queries are untouched
	other := domain.NewSearchVenuesRequest("sushi", domain.Coordinate{})
	require.NoError(t, repo.SaveSearchResults(ctx, other, []domain.VenueID{"s1"}))
	ids, err = repo.FetchSearchResults(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []domain.VenueID{"p2", "p3"}, ids)
}
