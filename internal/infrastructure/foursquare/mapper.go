package foursquare

import (
	"fmt"

	"github.com/convenuence/backend/internal/domain"
)

// mapVenue converts a Foursquare venue payload to the domain model. The
// favorite flag is left false; only the repository service knows the
// favorites set.
func mapVenue(dto venueDTO) domain.Venue {
	venue := domain.Venue{
		ID:       domain.VenueID(dto.FsqID),
		Name:     dto.Name,
		Distance: dto.Distance,
	}
	if len(dto.Categories) > 0 {
		icon := dto.Categories[0].Icon
		venue.Icon = &domain.CategoryIcon{Prefix: icon.Prefix, Suffix: icon.Suffix}
	}
	venue.Coordinate = mapCoordinate(dto.Geocodes)
	return venue
}

func mapVenues(dtos []venueDTO) []domain.Venue {
	venues := make([]domain.Venue, 0, len(dtos))
	for _, dto := range dtos {
		venues = append(venues, mapVenue(dto))
	}
	return venues
}

// mapVenueDetails converts a detail payload. Photo URLs come from a separate
// endpoint and are attached by the caller.
func mapVenueDetails(dto venueDetailsDTO) domain.VenueDetail {
	detail := domain.VenueDetail{
		ID:               domain.VenueID(dto.FsqID),
		Name:             dto.Name,
		FormattedAddress: dto.Location.FormattedAddress,
	}
	if dto.Description != nil {
		detail.Description = *dto.Description
	}
	detail.Coordinate = mapCoordinate(dto.Geocodes)
	return detail
}

func mapCoordinate(geocodes *geocodesDTO) *domain.Coordinate {
	if geocodes == nil || geocodes.Main == nil {
		return nil
	}
	return &domain.Coordinate{
		Latitude:  geocodes.Main.Latitude,
		Longitude: geocodes.Main.Longitude,
	}
}

// photoDisplayURL derives a display URL from photo metadata. Width and height
// are halved to keep bandwidth down on venue detail screens.
func photoDisplayURL(dto photoDTO) string {
	return fmt.Sprintf("%s%dx%d%s", dto.Prefix, dto.Width/2, dto.Height/2, dto.Suffix)
}

func mapPhotoURLs(dtos []photoDTO) []string {
	urls := make([]string, 0, len(dtos))
	for _, dto := range dtos {
		urls = append(urls, photoDisplayURL(dto))
	}
	return urls
}
