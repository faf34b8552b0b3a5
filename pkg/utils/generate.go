package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// GenerateBookingRef creates a human-readable booking reference.
// Format: TSN + YYYYMMDD + 3-digit random suffix, e.g. TSN20250310042.
// Not guaranteed unique; the bookings table enforces uniqueness and the
// caller retries on collision.
func GenerateBookingRef() string {
	now := time.Now()
	datePart := now.Format("20060102")
	randomPart := fmt.Sprintf("%03d", rand.Intn(1000))

	return fmt.Sprintf("TSN%s%s", datePart, randomPart)
}
