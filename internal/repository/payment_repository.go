package repository

import (
    "context"
    "database/sql"

    "github.com/google/uuid"

    "github.com/iliyamo/bus-ticket-reservation/internal/model"
)

// PaymentRepo appends to and reads the payment ledger.  The ledger is
// append-only: there is no update or delete here by design, every
// balance movement leaves exactly one immutable row.
type PaymentRepo struct {
    db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// AppendTx writes one ledger entry within the surrounding settlement
// transaction.  A unique reference is generated when the caller did
// not supply one, and the generated ID and reference are populated on
// the record.
func (r *PaymentRepo) AppendTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
    if p.Reference == "" {
        p.Reference = uuid.NewString()
    }
    if p.Status == "" {
        p.Status = "Completed"
    }
    const q = `INSERT INTO payments (reference, user_id, booking_id, amount_cents, kind, method, status)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    var bookingID any
    if p.BookingID != nil {
        bookingID = *p.BookingID
    }
    result, err := tx.ExecContext(ctx, q, p.Reference, p.UserID, bookingID, p.AmountCents, p.Kind, p.Method, p.Status)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return nil
}

// ListByUser returns a user's ledger entries, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error) {
    const q = `SELECT id, reference, user_id, booking_id, amount_cents, kind, method, status, created_at
               FROM payments WHERE user_id = ?
               ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Payment, 0)
    for rows.Next() {
        var p model.Payment
        var bookingID sql.NullInt64
        if err := rows.Scan(&p.ID, &p.Reference, &p.UserID, &bookingID, &p.AmountCents, &p.Kind, &p.Method, &p.Status, &p.CreatedAt); err != nil {
            return nil, err
        }
        if bookingID.Valid {
            id := uint64(bookingID.Int64)
            p.BookingID = &id
        }
        out = append(out, p)
    }
    return out, rows.Err()
}
