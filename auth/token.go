package auth

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// MintBroadcastToken mint a new capability token for a broadcast slot
func MintBroadcastToken() string {
	return ulid.Make().String()
}

/*
ComputeTokenExpiry compute when a slot capability token stops working

The token outlives the booked window by a grace period so promo and thank-you
submissions still land after the broadcast ends.

	@param endTime time.Time - booked window end
	@param grace time.Duration - validity beyond the window end
	@returns token expiry timestamp
*/
func ComputeTokenExpiry(endTime time.Time, grace time.Duration) time.Time {
	return endTime.Add(grace)
}
