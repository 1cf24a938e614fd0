package geocode

type nominatimAddress struct {
	City  string `json:"city"`
	Town  string `json:"town"`
	State string `json:"state"`
}

// nominatimResult is the subset of an OSM /search hit we read.
type nominatimResult struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
