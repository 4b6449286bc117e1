package checkout

import "github.com/Domenick1991/railbooking/internal/domain"

var trains = []domain.Train{
	{Number: "12345", Name: "Rajdhani Express", Departure: "06:00", Arrival: "14:30", Duration: "8h 30m", Price: 2450, Available: 42, Tags: []string{"Fastest", "Most Comfortable"}},
	{Number: "12346", Name: "Shatabdi Express", Departure: "08:15", Arrival: "17:00", Duration: "8h 45m", Price: 1890, Available: 156, Tags: []string{"Cheapest"}},
	{Number: "12347", Name: "Duronto Express", Departure: "10:30", Arrival: "18:45", Duration: "8h 15m", Price: 2250, Available: 23, Tags: []string{"Fastest"}},
}

var specialTrains = []domain.SpecialTrain{
	{ID: "ST001", Number: "22120", Name: "Shatabdi Premium Special", From: "New Delhi", To: "Mumbai Central", Date: "2025-11-20", Fare: 2500},
	{ID: "ST002", Number: "12650", Name: "Holiday Special Express", From: "Chennai Central", To: "Bangalore", Date: "2025-11-22", Fare: 850},
	{ID: "ST003", Number: "17603", Name: "Diwali Special", From: "Hyderabad", To: "Mumbai Central", Date: "2025-11-25", Fare: 1200},
}

func findTrain(number string) (domain.Train, bool) {
	for _, t := range trains {
		if t.Number == number {
			return t, true
		}
	}
	return domain.Train{}, false
}
