package model

import "time"

// Payment kinds.  Purchase debits the credit account, TopUp and Refund
// credit it.  The signed sum of a user's entries reconciles to the
// movement of their balance since account creation.
const (
    PaymentKindPurchase = "Purchase"
    PaymentKindTopUp    = "TopUp"
    PaymentKindRefund   = "Refund"
)

// Payment is an immutable ledger entry recording one balance-affecting
// event.  Entries are append-only: they are never updated or deleted,
// and every debit or credit of a credit account writes exactly one.
//
// Fields:
//  ID          primary key identifier.
//  Reference   opaque unique reference for reconciliation exports.
//  UserID      account owner.
//  BookingID   booking that caused the movement, if any.
//  AmountCents always positive; the Kind gives the direction.
//  Kind        one of the PaymentKind* constants.
//  Method      payment method label (e.g. "Credit", "CreditCard").
//  Status      settlement status, "Completed" for engine-written rows.
//  CreatedAt   when the movement happened.
type Payment struct {
    ID          uint64    // payments.id
    Reference   string    // payments.reference
    UserID      uint64    // payments.user_id
    BookingID   *uint64   // payments.booking_id (nullable)
    AmountCents int64     // payments.amount_cents
    Kind        string    // payments.kind
    Method      string    // payments.method
    Status      string    // payments.status
    CreatedAt   time.Time // payments.created_at
}
