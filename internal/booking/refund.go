package booking

import "time"

// RefundPolicy decides how much of a booking's final price is returned
// when it is cancelled, given the trip's departure instant and the
// current time.  Returning an error rejects the cancellation outright.
// The policy is injected into the engine so deployments can switch
// behaviour without touching the settlement flow.
type RefundPolicy func(finalCents int64, departsAt, now time.Time) (int64, error)

// FullRefund returns the entire final price regardless of timing.
// This is the deployed default.
func FullRefund(finalCents int64, _, _ time.Time) (int64, error) {
    return finalCents, nil
}

// TimeBasedRefund rejects cancellation once the trip has departed,
// refunds half within the final hour before departure, and refunds in
// full before that.  The half refund rounds down to the cent; the
// unrefunded remainder stays with the carrier.
func TimeBasedRefund(finalCents int64, departsAt, now time.Time) (int64, error) {
    if !departsAt.IsZero() && !now.Before(departsAt) {
        return 0, failf(CodeNotCancellable, "trip has already departed")
    }
    if !departsAt.IsZero() && departsAt.Sub(now) < time.Hour {
        return finalCents / 2, nil
    }
    return finalCents, nil
}

// PolicyByName resolves a refund policy from its configuration name.
// Unknown names fall back to the full-refund default.
func PolicyByName(name string) RefundPolicy {
    if name == "timed" {
        return TimeBasedRefund
    }
    return FullRefund
}
