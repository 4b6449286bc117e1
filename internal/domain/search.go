package domain

const DefaultTravelClass = "All Classes"

type SearchParams struct {
	From          string `json:"from"`
	To            string `json:"to"`
	FromStation   string `json:"from_station,omitempty"`
	ToStation     string `json:"to_station,omitempty"`
	Date          string `json:"date"`
	TravelClass   string `json:"travel_class"`
	Passengers    int    `json:"passengers"`
	TatkalEnabled bool   `json:"tatkal_enabled"`
}
