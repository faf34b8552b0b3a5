package request

type RoomFilterRequest struct {
	CategoryID *int     `json:"category,omitempty"`
	Available  *bool    `json:"available,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
}

// SetAvailabilityRequest is the manual admin override for a room's
// availability flag. The override is advisory: the next reconciliation
// pass recomputes the flag from the booking ledger.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}
