package domain

type Station struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// City is static reference data used for route lookup and typo correction.
type City struct {
	Name         string    `json:"name"`
	Misspellings []string  `json:"misspellings"`
	Stations     []Station `json:"stations"`
}
