package domain

import "fmt"

// VenueID uniquely identifies a venue within the provider's id space.
// IDs are opaque strings and stable across searches, so they double as cache keys.
type VenueID string

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CategoryIcon holds the two halves of a category icon URL. The provider splits
// icon URLs so the client can pick a pixel resolution at render time.
type CategoryIcon struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// URL assembles the icon URL for the requested pixel resolution (e.g. 64).
func (i CategoryIcon) URL(resolution int) string {
	if i.Prefix == "" && i.Suffix == "" {
		return ""
	}
	return fmt.Sprintf("%s%d%s", i.Prefix, resolution, i.Suffix)
}

// Venue is the search-result projection of a place. IsFavorite is local-only
// state stamped from the favorites set; it is never part of the provider payload.
type Venue struct {
	ID         VenueID       `json:"id"`
	Name       string        `json:"name"`
	IsFavorite bool          `json:"isFavorite"`
	Icon       *CategoryIcon `json:"icon,omitempty"`
	Coordinate *Coordinate   `json:"coordinate,omitempty"`
	Distance   int           `json:"distance,omitempty"` // meters from the search origin
}

// CategoryIconURL resolves the venue's category icon at the given resolution.
// Returns "" when the venue has no categorized icon.
func (v Venue) CategoryIconURL(resolution int) string {
	if v.Icon == nil {
		return ""
	}
	return v.Icon.URL(resolution)
}

// WithFavorite returns a copy of the venue with the favorite flag replaced.
func (v Venue) WithFavorite(isFavorite bool) Venue {
	v.IsFavorite = isFavorite
	return v
}

// VenueDetail is the expanded record for a single place. It shares the id space
// with Venue but is cached independently; no referential integrity is enforced
// between the two.
type VenueDetail struct {
	ID               VenueID     `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	IsFavorite       bool        `json:"isFavorite"`
	FormattedAddress string      `json:"formattedAddress"`
	Coordinate       *Coordinate `json:"coordinate,omitempty"`
	PhotoURLs        []string    `json:"photoUrls,omitempty"`
}

// WithFavorite returns a copy of the detail with the favorite flag replaced.
func (d VenueDetail) WithFavorite(isFavorite bool) VenueDetail {
	d.IsFavorite = isFavorite
	return d
}
