package domain

import (
	"math"
	"strconv"
	"time"
)

// ZeroPace is returned whenever pace is undefined.
const ZeroPace = "0:00"

// paceTolerance is a relative slack applied before flooring. It absorbs the
// last-bit error of the division; a quotient within one part in 1e14 below the
// next whole second is floored up to it.
const paceTolerance = 1e-14

// ComputePace returns minutes-per-kilometre as "M:SS". A non-positive distance
// or duration, or a pace too large to represent, yields ZeroPace.
func ComputePace(d time.Duration, distanceKm float64) string {
	perKm, ok := PaceSeconds(d, distanceKm)
	if !ok {
		return ZeroPace
	}
	secs := math.Mod(perKm, 60)
	mins := (perKm - secs) / 60
	out := strconv.FormatFloat(mins, 'f', 0, 64) + ":"
	if secs < 10 {
		out += "0"
	}
	return out + strconv.Itoa(int(secs))
}

// PaceSeconds returns whole seconds per kilometre as a float64, so very small
// distances cannot overflow an integer. ok is false when pace is undefined.
func PaceSeconds(d time.Duration, distanceKm float64) (float64, bool) {
	if distanceKm <= 0 || d <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return 0, false
	}
	perKm := math.Floor(d.Seconds() / distanceKm * (1 + paceTolerance))
	if math.IsInf(perKm, 0) || math.IsNaN(perKm) {
		return 0, false
	}
	return perKm, true
}
