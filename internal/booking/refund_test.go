package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestFullRefund(t *testing.T) {
    got, err := FullRefund(63000, time.Time{}, fixedNow)
    require.NoError(t, err)
    assert.Equal(t, int64(63000), got)
}

func TestTimeBasedRefund(t *testing.T) {
    departs := time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC)

    // Well before departure: full refund.
    got, err := TimeBasedRefund(63000, departs, departs.Add(-3*time.Hour))
    require.NoError(t, err)
    assert.Equal(t, int64(63000), got)

    // Inside the last hour: half, rounded down.
    got, err = TimeBasedRefund(63001, departs, departs.Add(-30*time.Minute))
    require.NoError(t, err)
    assert.Equal(t, int64(31500), got)

    // At or after departure: rejected.
    _, err = TimeBasedRefund(63000, departs, departs)
    requireFailure(t, err, CodeNotCancellable)
    _, err = TimeBasedRefund(63000, departs, departs.Add(time.Minute))
    requireFailure(t, err, CodeNotCancellable)

    // Unknown departure instant never blocks a cancellation.
    got, err = TimeBasedRefund(63000, time.Time{}, fixedNow)
    require.NoError(t, err)
    assert.Equal(t, int64(63000), got)
}

func TestPolicyByName(t *testing.T) {
    departs := time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC)

    got, err := PolicyByName("timed")(63000, departs, departs.Add(-10*time.Minute))
    require.NoError(t, err)
    assert.Equal(t, int64(31500), got)

    for _, name := range []string{"full", "", "bogus"} {
        got, err := PolicyByName(name)(63000, departs, departs.Add(-10*time.Minute))
        require.NoError(t, err)
        assert.Equal(t, int64(63000), got, "policy %q", name)
    }
}
