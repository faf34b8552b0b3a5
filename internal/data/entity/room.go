package entity

import "time"

// Room is a bookable unit. FinalPrice is the discounted nightly price
// (price minus offer percentage) and is what pricing is computed from.
// IsAvailable is derived from the booking ledger by the availability
// reconciler; IsEnabled controls whether the room is bookable at all.
type Room struct {
	RoomID          int       `db:"room_id"`
	RoomNumber      string    `db:"room_number"`
	Title           string    `db:"title"`
	CategoryID      int       `db:"category_id"`
	ShortTagline    string    `db:"short_tagline"`
	LongDescription string    `db:"long_description"`
	Price           float64   `db:"price"`
	OfferPercentage float64   `db:"offer_percentage"`
	FinalPrice      float64   `db:"final_price"`
	IsAvailable     bool      `db:"is_available"`
	IsEnabled       bool      `db:"is_enabled"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
