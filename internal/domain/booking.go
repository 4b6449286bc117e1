package domain

type BookingType string

const (
	BookingTypeTrain      BookingType = "train"
	BookingTypeHotel      BookingType = "hotel"
	BookingTypeCab        BookingType = "cab"
	BookingTypeRestaurant BookingType = "restaurant"
)

const (
	BookingStatusConfirmed = "Confirmed"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type PassengerDetail struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

// Booking is a fully normalized reservation. Every field carries a value once it
// has passed through booking normalization.
type Booking struct {
	ID               string            `json:"id"`
	Type             BookingType       `json:"type"`
	Name             string            `json:"name"`
	From             string            `json:"from"`
	To               string            `json:"to"`
	FromStation      string            `json:"from_station"`
	ToStation        string            `json:"to_station"`
	Date             string            `json:"date"`
	Time             string            `json:"time"`
	Seats            []string          `json:"seats"`
	Passengers       int               `json:"passengers"`
	PassengerDetails []PassengerDetail `json:"passenger_details"`
	Status           string            `json:"status"`
	TravelClass      string            `json:"travel_class"`
	Tatkal           bool              `json:"tatkal"`
	BaseFare         int64             `json:"base_fare"`
	Discount         float64           `json:"discount"`
	Amount           int64             `json:"amount"`
	Extra            string            `json:"extra,omitempty"`
	BookingDate      string            `json:"booking_date"`
	PNR              string            `json:"pnr"`
	Train            string            `json:"train"`
	TrainNumber      string            `json:"train_number"`
	Platform         string            `json:"platform"`
	Coach            string            `json:"coach"`
}

// BookingDraft is caller-supplied partial input. Nil fields are defaulted.
type BookingDraft struct {
	ID               *string           `json:"id,omitempty"`
	Type             *BookingType      `json:"type,omitempty"`
	Name             *string           `json:"name,omitempty"`
	From             *string           `json:"from,omitempty"`
	To               *string           `json:"to,omitempty"`
	FromStation      *string           `json:"from_station,omitempty"`
	ToStation        *string           `json:"to_station,omitempty"`
	Date             *string           `json:"date,omitempty"`
	Time             *string           `json:"time,omitempty"`
	Seats            []string          `json:"seats,omitempty"`
	Passengers       *int              `json:"passengers,omitempty"`
	PassengerDetails []PassengerDetail `json:"passenger_details,omitempty"`
	Status           *string           `json:"status,omitempty"`
	TravelClass      *string           `json:"travel_class,omitempty"`
	Tatkal           *bool             `json:"tatkal,omitempty"`
	Amount           *int64            `json:"amount,omitempty"`
	Extra            *string           `json:"extra,omitempty"`
	PNR              *string           `json:"pnr,omitempty"`
	Train            *string           `json:"train,omitempty"`
	TrainNumber      *string           `json:"train_number,omitempty"`
	Platform         *string           `json:"platform,omitempty"`
	Coach            *string           `json:"coach,omitempty"`
}

// BookingPatch is applied as a shallow merge over an existing booking.
type BookingPatch struct {
	Name             *string           `json:"name,omitempty"`
	From             *string           `json:"from,omitempty"`
	To               *string           `json:"to,omitempty"`
	FromStation      *string           `json:"from_station,omitempty"`
	ToStation        *string           `json:"to_station,omitempty"`
	Date             *string           `json:"date,omitempty"`
	Time             *string           `json:"time,omitempty"`
	Seats            []string          `json:"seats,omitempty"`
	Passengers       *int              `json:"passengers,omitempty"`
	PassengerDetails []PassengerDetail `json:"passenger_details,omitempty"`
	Status           *string           `json:"status,omitempty"`
	TravelClass      *string           `json:"travel_class,omitempty"`
	Extra            *string           `json:"extra,omitempty"`
	PNR              *string           `json:"pnr,omitempty"`
	Train            *string           `json:"train,omitempty"`
	TrainNumber      *string           `json:"train_number,omitempty"`
	Platform         *string           `json:"platform,omitempty"`
	Coach            *string           `json:"coach,omitempty"`
}

// TicketEdit carries the fields of a full-ticket edit.
type TicketEdit struct {
	Passenger   PassengerDetail `json:"passenger"`
	Train       string          `json:"train"`
	TrainNumber string          `json:"train_number"`
	PNR         string          `json:"pnr"`
	Coach       string          `json:"coach"`
	Platform    string          `json:"platform"`
	FromStation string          `json:"from_station"`
	ToStation   string          `json:"to_station"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Seat        string          `json:"seat"`
}
