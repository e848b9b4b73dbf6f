package model

import "time"

// User is the slice of the externally-owned user record that the
// engine reads.  Registration, authentication and profile management
// live in the auth service; the engine only needs the identity and the
// prepaid credit balance, which it mutates through debit/credit
// operations inside booking transactions.  The balance is never
// negative.
type User struct {
    ID                 uint64    // users.id
    FirstName          string    // users.first_name
    LastName           string    // users.last_name
    Email              string    // users.email
    CreditBalanceCents int64     // users.credit_balance_cents
    CreatedAt          time.Time // users.created_at
}
