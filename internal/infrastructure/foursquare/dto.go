package foursquare

// Wire shapes for the Foursquare Places v3 API. Field coverage is limited to
// what the app consumes.

type searchResponseDTO struct {
	Results []venueDTO `json:"results"`
}

type venueDTO struct {
	FsqID      string        `json:"fsq_id"`
	Name       string        `json:"name"`
	Location   locationDTO   `json:"location"`
	Categories []categoryDTO `json:"categories"`
	Geocodes   *geocodesDTO  `json:"geocodes,omitempty"`
	Distance   int           `json:"distance,omitempty"`
}

type venueDetailsDTO struct {
	FsqID       string        `json:"fsq_id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Location    locationDTO   `json:"location"`
	Categories  []categoryDTO `json:"categories"`
	// Geocodes may be absent entirely for some venues, not just empty.
	Geocodes *geocodesDTO `json:"geocodes,omitempty"`
}

type locationDTO struct {
	Address          string `json:"address"`
	FormattedAddress string `json:"formatted_address"`
	Locality         string `json:"locality"`
	Postcode         string `json:"postcode"`
	Region           string `json:"region"`
	Country          string `json:"country"`
}

type categoryDTO struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Icon      iconDTO `json:"icon"`
}

type iconDTO struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

type geocodesDTO struct {
	Main *coordinateDTO `json:"main,omitempty"`
}

type coordinateDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type photoDTO struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
