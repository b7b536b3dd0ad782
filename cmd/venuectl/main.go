package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/convenuence/backend/config"
	"github.com/convenuence/backend/internal/domain"
	"github.com/convenuence/backend/internal/infrastructure/foursquare"
	"github.com/convenuence/backend/internal/infrastructure/kvstore"
	"github.com/convenuence/backend/internal/infrastructure/venuecache"
	"github.com/convenuence/backend/internal/usecase"
)

// venuectl is a small operator tool for poking at the venue repository from
// the command line, sharing the server's configuration and cache on disk.
func main() {
	root, err := newRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var store domain.KeyValueStore
	switch cfg.Store.Type {
	case "file":
		fileStore, err := kvstore.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store at %s: %w", cfg.Store.Path, err)
		}
		store = fileStore
	default:
		store = kvstore.NewMemoryStore()
	}

	cache := venuecache.NewRepository(store)
	apiClient := foursquare.NewClient(foursquare.Config{
		APIKey:     cfg.Foursquare.APIKey,
		BaseURL:    cfg.Foursquare.BaseURL,
		MaxRetries: cfg.Foursquare.MaxRetries,
		RetryDelay: cfg.Foursquare.RetryDelay,
		Timeout:    cfg.Foursquare.Timeout,
	})
	service := usecase.NewVenueService(apiClient, cache)

	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Search venues, inspect details, and manage favorites.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newSearchCommand(service))
	root.AddCommand(newDetailsCommand(service))
	root.AddCommand(newFavoritesCommand(service))

	return root, nil
}

func newSearchCommand(service *usecase.VenueService) *cobra.Command {
	var query string
	var lat, lng float64
	var cached bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search venues by query near a location.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			location := domain.Coordinate{Latitude: lat, Longitude: lng}

			var venues []domain.Venue
			var err error
			if cached {
				venues, err = service.SearchVenuesFromCache(cmd.Context(), location, query)
			} else {
				venues, err = service.SearchVenues(cmd.Context(), location, query)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, venues)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search query")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude in decimal degrees")
	cmd.Flags().BoolVar(&cached, "cached", false, "Answer from the local cache without hitting the network")
	if err := cmd.MarkFlagRequired("query"); err != nil {
		panic(err)
	}

	return cmd
}

func newDetailsCommand(service *usecase.VenueService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <venue-id>",
		Short: "Fetch the detail record for one venue.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := service.GetVenueDetails(cmd.Context(), domain.VenueID(args[0]))
			if err != nil {
				return err
			}
			return writeJSON(cmd, detail)
		},
	}
	return cmd
}

func newFavoritesCommand(service *usecase.VenueService) *cobra.Command {
	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite venues.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite venues resolvable from the cache.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			venues, err := service.GetFavorites(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, venues)
		},
	}

	add := &cobra.Command{
		Use:   "add <venue-id>",
		Short: "Mark a venue as favorite.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.SaveFavorite(cmd.Context(), domain.VenueID(args[0]))
		},
	}

	remove := &cobra.Command{
		Use:   "remove <venue-id>",
		Short: "Unmark a venue as favorite.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return service.RemoveFavorite(cmd.Context(), domain.VenueID(args[0]))
		},
	}

	favorites.AddCommand(list)
	favorites.AddCommand(add)
	favorites.AddCommand(remove)
	return favorites
}

func writeJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func init() {
	log.SetOutput(os.Stderr)
}
