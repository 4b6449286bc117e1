package cities

import "github.com/Domenick1991/railbooking/internal/domain"

var catalog = []domain.City{
	{
		Name:         "Hyderabad",
		Misspellings: []string{"hydrabad", "hyd", "hyderbad", "hyderabat"},
		Stations: []domain.Station{
			{Name: "Kacheguda", Code: "KCG"},
			{Name: "Secunderabad", Code: "SC"},
			{Name: "Nampally", Code: "HYB"},
		},
	},
	{
		Name:         "Mumbai",
		Misspellings: []string{"mumbai", "bombay", "mum", "mumba"},
		Stations: []domain.Station{
			{Name: "Dadar", Code: "DR"},
			{Name: "CSMT", Code: "CSMT"},
			{Name: "Thane", Code: "TNA"},
		},
	},
	{
		Name:         "Bangalore",
		Misspellings: []string{"banglor", "bangalor", "bengaluru", "blr", "bangolore"},
		Stations: []domain.Station{
			{Name: "Bangalore City", Code: "BNC"},
			{Name: "Yeshwantpur", Code: "YPR"},
			{Name: "Bangalore East", Code: "BNCE"},
		},
	},
	{
		Name:         "Chennai",
		Misspellings: []string{"chennai", "madras", "chnnai", "chenai"},
		Stations: []domain.Station{
			{Name: "Chennai Central", Code: "MAS"},
			{Name: "Chennai Egmore", Code: "MS"},
			{Name: "Tambaram", Code: "TBM"},
		},
	},
	{
		Name:         "New Delhi",
		Misspellings: []string{"delhi", "newdelhi", "dilli", "delh"},
		Stations: []domain.Station{
			{Name: "New Delhi", Code: "NDLS"},
			{Name: "Old Delhi", Code: "DLI"},
			{Name: "Hazrat Nizamuddin", Code: "NZM"},
		},
	},
}

// Catalog returns a copy of the built-in city list in display order.
func Catalog() []domain.City {
	out := make([]domain.City, len(catalog))
	copy(out, catalog)
	return out
}
