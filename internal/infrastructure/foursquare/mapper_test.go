package foursquare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhotoDisplayURL(t *testing.T) {
	tests := []struct {
		name  string
		photo photoDTO
		want  string
	}{
		{
			name:  "even dimensions",
			photo: photoDTO{Prefix: "https://cdn.example.com/", Suffix: "/p.jpg", Width: 1920, Height: 1440},
			want:  "https://cdn.example.com/960x720/p.jpg",
		},
		{
			name:  "odd dimensions truncate",
			photo: photoDTO{Prefix: "https://cdn.example.com/", Suffix: "/p.jpg", Width: 1001, Height: 751},
			want:  "https://cdn.example.com/500x375/p.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, photoDisplayURL(tt.photo))
		})
	}
}

func TestMapVenue_FirstCategoryWins(t *testing.T) {
	dto := venueDTO{
		FsqID: "p1",
		Name:  "Pizza Bar",
		Categories: []categoryDTO{
			{Name: "Pizzeria", Icon: iconDTO{Prefix: "https://icons/pizza_", Suffix: ".png"}},
			{Name: "Bar", Icon: iconDTO{Prefix: "https://icons/bar_", Suffix: ".png"}},
		},
	}

	venue := mapVenue(dto)

	assert.Equal(t, "https://icons/pizza_32.png", venue.CategoryIconURL(32))
}

func TestMapVenueDetails_FormattedAddress(t *testing.T) {
	dto := venueDetailsDTO{
		FsqID: "p1",
		Name:  "Pizza Bar",
		Location: locationDTO{
			Address:          "1 Main St",
			FormattedAddress: "1 Main St, New York, NY 10001",
		},
	}

	detail := mapVenueDetails(dto)

	assert.Equal(t, "1 Main St, New York, NY 10001", detail.FormattedAddress)
	assert.Empty(t, detail.PhotoURLs)
}
