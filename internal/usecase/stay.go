package usecase

import (
	"math"
	"time"
)

// Overlaps reports whether the half-open date ranges [aIn, aOut) and
// [bIn, bOut) intersect. Checkout day is exclusive: a guest leaving on
// day D and another arriving on day D do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// ComputeStay returns the number of nights and the total amount for a
// stay. Nights is the ceiling of the day difference so DST or time zone
// artifacts never round a stay down.
func ComputeStay(pricePerNight float64, checkIn, checkOut time.Time) (int, float64) {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	return nights, pricePerNight * float64(nights)
}
