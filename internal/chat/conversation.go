// Package chat implements the rule-based booking assistant as a state machine.
// It only decides replies; creating the booking is left to the caller.
package chat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Domenick1991/railbooking/internal/domain"
)

const (
	Greeting     = "Hi! I'm your AI travel assistant. Try 'Book a Ticket' to get started."
	msgFallback  = "I didn't quite understand that. You can say 'Book a Ticket' to start booking or choose a quick action."
	msgStart     = "Sure — let's book a ticket. Where are you travelling from? (type station name)"
	msgAskTo     = "Got it — destination?"
	msgSameRoute = "Departure and destination cannot be the same. Please give a different destination."
	msgAskDate   = "Which date would you like to travel? (YYYY-MM-DD). If you want Tatkal, say 'tatkal' instead of a date."
	msgBadDate   = "Please send date as YYYY-MM-DD, or type 'tatkal' if you want Tatkal."
	msgAskClass  = "Which class do you prefer? (All Classes / AC 1st Class / AC 2-Tier / AC 3-Tier / Sleeper)"
	msgAskCount  = "How many passengers? (1–6)"
	msgBadCount  = "Please enter a number between 1 and 6."
	msgCancelled = "Booking flow cancelled. If you want to start again, say 'Book a Ticket'."
	msgReconfirm = "Reply 'confirm' to finish booking or 'cancel' to stop."
	msgNoStation = "❌ Invalid station name. Please enter a valid station from: New Delhi, Mumbai Central, Chennai Central, Kolkata, Bangalore, Hyderabad, etc."

	maxPassengers  = 6
	maxSuggestions = 3
)

// Stations the assistant accepts as origin or destination.
var Stations = []string{
	"New Delhi", "Mumbai Central", "Chennai Central", "Kolkata", "Bangalore",
	"Hyderabad", "Pune", "Ahmedabad", "Jaipur", "Lucknow",
	"Chandigarh", "Goa", "Agra", "Varanasi", "Amritsar",
	"Bhopal", "Indore", "Nagpur", "Surat", "Kochi",
}

// BookingIntent is emitted once the user confirms the collected journey.
type BookingIntent struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Date        string `json:"date"`
	TravelClass string `json:"travel_class"`
	Passengers  int    `json:"passengers"`
	Tatkal      bool   `json:"tatkal"`
}

type Reply struct {
	Text   string         `json:"text"`
	State  State          `json:"state"`
	Intent *BookingIntent `json:"intent,omitempty"`
}

type draft struct {
	from, to, date, travelClass string
	passengers                  int
	tatkal                      bool
}

type step func(c *Conversation, input string, now time.Time) Reply

// Conversation holds one user's progress through the booking flow.
// It is not safe for concurrent use.
type Conversation struct {
	state State
	draft draft
}

var transitions map[State]step

func init() {
	transitions = map[State]step{
		Idle:                 (*Conversation).idle,
		CollectingFrom:       (*Conversation).collectFrom,
		CollectingTo:         (*Conversation).collectTo,
		CollectingDate:       (*Conversation).collectDate,
		CollectingClass:      (*Conversation).collectClass,
		CollectingPassengers: (*Conversation).collectPassengers,
		Confirming:           (*Conversation).confirm,
	}
}

func NewConversation() *Conversation {
	return &Conversation{state: Idle}
}

func (c *Conversation) State() State {
	return c.state
}

// Handle advances the conversation by one user message.
func (c *Conversation) Handle(input string, now time.Time) Reply {
	txt := strings.TrimSpace(input)
	if txt == "" {
		return Reply{State: c.state}
	}

	lower := strings.ToLower(txt)
	if strings.Contains(lower, "book") || strings.Contains(lower, "ticket") {
		return c.start()
	}

	next, ok := transitions[c.state]
	if !ok {
		c.reset()
		return c.reply(msgFallback)
	}
	return next(c, txt, now)
}

func (c *Conversation) start() Reply {
	c.draft = draft{travelClass: domain.DefaultTravelClass, passengers: 1}
	c.state = CollectingFrom
	return c.reply(msgStart)
}

func (c *Conversation) reset() {
	c.state = Idle
	c.draft = draft{}
}

func (c *Conversation) reply(text string) Reply {
	return Reply{Text: text, State: c.state}
}

func (c *Conversation) idle(_ string, _ time.Time) Reply {
	return c.reply(msgFallback)
}

func (c *Conversation) collectFrom(input string, _ time.Time) Reply {
	station, ok := lookupStation(input)
	if !ok {
		return c.reply(invalidStation(input))
	}
	c.draft.from = station
	c.state = CollectingTo
	return c.reply(msgAskTo)
}

func (c *Conversation) collectTo(input string, _ time.Time) Reply {
	station, ok := lookupStation(input)
	if !ok {
		return c.reply(invalidStation(input))
	}
	if strings.EqualFold(station, c.draft.from) {
		return c.reply(msgSameRoute)
	}
	c.draft.to = station
	c.state = CollectingDate
	return c.reply(msgAskDate)
}

func (c *Conversation) collectDate(input string, now time.Time) Reply {
	if strings.Contains(strings.ToLower(input), "tatkal") {
		c.draft.tatkal = true
		c.draft.date = now.AddDate(0, 0, 1).Format(time.DateOnly)
		c.state = CollectingClass
		return c.reply(fmt.Sprintf("Tatkal selected — date auto-set to %s. Which class? (eg. Sleeper, AC 3-Tier)", c.draft.date))
	}
	if _, err := time.Parse(time.DateOnly, input); err != nil || len(input) != len(time.DateOnly) {
		return c.reply(msgBadDate)
	}
	c.draft.date = input
	c.state = CollectingClass
	return c.reply(msgAskClass)
}

func (c *Conversation) collectClass(input string, _ time.Time) Reply {
	c.draft.travelClass = input
	c.state = CollectingPassengers
	return c.reply(msgAskCount)
}

func (c *Conversation) collectPassengers(input string, _ time.Time) Reply {
	n, ok := leadingInt(input)
	if !ok || n < 1 || n > maxPassengers {
		return c.reply(msgBadCount)
	}
	c.draft.passengers = n
	c.state = Confirming
	d := c.draft
	return c.reply(fmt.Sprintf("Please confirm: %s → %s on %s, %s, %d passenger(s). Reply 'confirm' to book or 'cancel' to abort.",
		d.from, d.to, d.date, d.travelClass, d.passengers))
}

func (c *Conversation) confirm(input string, _ time.Time) Reply {
	lower := strings.ToLower(input)
	switch {
	case strings.HasPrefix(lower, "confirm"):
		d := c.draft
		c.reset()
		r := c.reply("")
		r.Intent = &BookingIntent{
			From:        d.from,
			To:          d.to,
			Date:        d.date,
			TravelClass: d.travelClass,
			Passengers:  d.passengers,
			Tatkal:      d.tatkal,
		}
		return r
	case strings.HasPrefix(lower, "cancel"):
		c.reset()
		return c.reply(msgCancelled)
	default:
		return c.reply(msgReconfirm)
	}
}

// ConfirmationMessage is the reply text once the intent has been booked under ref.
func ConfirmationMessage(ref string) string {
	return fmt.Sprintf("✅ Booking confirmed! Reference %s. I've added it to your My Bookings and notified you.", ref)
}

func lookupStation(input string) (string, bool) {
	for _, s := range Stations {
		if strings.EqualFold(s, input) {
			return s, true
		}
	}
	return "", false
}

// SuggestStations returns up to three stations whose names contain the input or
// are contained in it.
func SuggestStations(input string) []string {
	q := strings.ToLower(input)
	var out []string
	for _, s := range Stations {
		name := strings.ToLower(s)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			out = append(out, s)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func invalidStation(input string) string {
	if s := SuggestStations(input); len(s) > 0 {
		return fmt.Sprintf("❌ Invalid station name. Did you mean: %s? Please enter a valid station name.", strings.Join(s, ", "))
	}
	return msgNoStation
}

// leadingInt parses the integer at the start of s, ignoring anything after it.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || (end == 0 && (s[end] == '-' || s[end] == '+'))) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
