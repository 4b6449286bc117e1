// Package tickets renders e-ticket documents for train bookings.
package tickets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/railbooking/internal/domain"
)

const (
	defaultTrain       = "Rajdhani Express"
	defaultTrainNumber = "12345"
	defaultFrom        = "Chennai Central"
	defaultTo          = "New Delhi"
	defaultTime        = "08:30"
	defaultCoach       = "B2"
	defaultPlatform    = "4"
	defaultSeats       = "B2-23, B2-24"
	defaultFare        = 2450
	defaultPassengers  = 2

	gstRate = 0.05
)

// Ticket is a booking with every printed field resolved.
type Ticket struct {
	PNR         string
	Train       string
	TrainNumber string
	From        string
	To          string
	Date        string
	Time        string
	Coach       string
	Platform    string
	Passengers  int
	Seats       string
	Riders      []Rider
	BaseFare    int64
	GST         int64
	Total       int64
}

type Rider struct {
	Name   string
	Age    string
	Gender string
	Seat   string
}

// Resolve fills gaps in b with the printed defaults.
func Resolve(b domain.Booking, now time.Time) Ticket {
	t := Ticket{
		PNR:         b.PNR,
		Train:       or(b.Train, defaultTrain),
		TrainNumber: or(b.TrainNumber, defaultTrainNumber),
		From:        or(b.FromStation, defaultFrom),
		To:          or(b.ToStation, defaultTo),
		Date:        or(b.Date, now.UTC().Format(time.DateOnly)),
		Time:        or(b.Time, defaultTime),
		Coach:       or(b.Coach, defaultCoach),
		Platform:    or(b.Platform, defaultPlatform),
		Passengers:  b.Passengers,
		Seats:       defaultSeats,
		BaseFare:    b.Amount,
	}
	if t.PNR == "" {
		t.PNR = fmt.Sprintf("PNR%06d", now.UnixMilli()%1_000_000)
	}
	if t.Passengers == 0 {
		t.Passengers = defaultPassengers
	}
	if len(b.Seats) > 0 {
		t.Seats = strings.Join(b.Seats, ", ")
	}
	if t.BaseFare == 0 {
		t.BaseFare = defaultFare
	}
	t.GST = int64(math.Round(float64(t.BaseFare) * gstRate))
	t.Total = t.BaseFare + t.GST

	if len(b.PassengerDetails) == 0 {
		t.Riders = []Rider{{Name: "Passenger", Age: "-", Gender: "-", Seat: t.Seats}}
		return t
	}
	for i, p := range b.PassengerDetails {
		r := Rider{Name: or(p.Name, "Not Provided"), Age: "-", Gender: or(string(p.Gender), "-"), Seat: "-"}
		if p.Age > 0 {
			r.Age = strconv.Itoa(p.Age)
		}
		switch {
		case i < len(b.Seats):
			r.Seat = b.Seats[i]
		case len(b.Seats) > 0:
			r.Seat = b.Seats[0]
		}
		t.Riders = append(t.Riders, r)
	}
	return t
}

// Payload is the text encoded in the ticket QR code.
func (t Ticket) Payload() string {
	return strings.Join([]string{
		"IRCTC_TICKET",
		"PNR:" + t.PNR,
		"Train:" + t.TrainNumber,
		"TrainName:" + t.Train,
		"From:" + t.From,
		"To:" + t.To,
		"Date:" + t.Date,
		"Coach:" + t.Coach,
		"Seats:" + t.Seats,
		"Verified:true",
	}, "\n")
}

func (t Ticket) Filename() string {
	return "IRCTC_Ticket_" + t.PNR + ".pdf"
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
