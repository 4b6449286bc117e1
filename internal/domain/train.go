package domain

type Train struct {
	Number    string   `json:"number"`
	Name      string   `json:"name"`
	Departure string   `json:"departure"`
	Arrival   string   `json:"arrival"`
	Duration  string   `json:"duration"`
	Price     int64    `json:"price"`
	Available int      `json:"available"`
	Tags      []string `json:"tags"`
}

// SpecialTrain is a dated festive/holiday service shown alongside the regular catalog.
type SpecialTrain struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
	From   string `json:"from"`
	To     string `json:"to"`
	Date   string `json:"date"`
	Fare   int64  `json:"fare"`
}
