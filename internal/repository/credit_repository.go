package repository

import (
    "context"
    "database/sql"
    "errors"
)

// CreditRepo mutates the prepaid credit balance attached to a user.
// The balance is observable only through these operations, all of
// which run inside the transaction of the booking, refund or top-up
// that moves the money, together with the matching ledger entry.
type CreditRepo struct {
    db *sql.DB
}

// NewCreditRepo returns a new CreditRepo bound to the given database.
func NewCreditRepo(db *sql.DB) *CreditRepo { return &CreditRepo{db: db} }

// Balance reads a user's current balance outside any transaction.
func (r *CreditRepo) Balance(ctx context.Context, userID uint64) (int64, error) {
    const q = `SELECT credit_balance_cents FROM users WHERE id = ?`
    var cents int64
    err := r.db.QueryRowContext(ctx, q, userID).Scan(&cents)
    if errors.Is(err, sql.ErrNoRows) {
        return 0, sql.ErrNoRows
    }
    return cents, err
}

// BalanceForUpdateTx reads the balance and locks the user row.  The
// engine locks accounts last (after trip, seats and coupon) so the
// lock ordering is the same in every transaction.
func (r *CreditRepo) BalanceForUpdateTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
    const q = `SELECT credit_balance_cents FROM users WHERE id = ? FOR UPDATE`
    var cents int64
    err := tx.QueryRowContext(ctx, q, userID).Scan(&cents)
    return cents, err
}

// DebitTx subtracts amount from the balance.  The WHERE guard keeps
// the balance non-negative: when it does not cover the amount, no row
// is updated and ErrInsufficientCredit is returned without mutation.
func (r *CreditRepo) DebitTx(ctx context.Context, tx *sql.Tx, userID uint64, amountCents int64) error {
    const q = `UPDATE users SET credit_balance_cents = credit_balance_cents - ?
               WHERE id = ? AND credit_balance_cents >= ?`
    res, err := tx.ExecContext(ctx, q, amountCents, userID, amountCents)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrInsufficientCredit
    }
    return nil
}

// CreditTx adds amount to the balance.  ErrUserNotFound is returned
// when no user row matches, which aborts the surrounding transaction
// before a ledger entry without a balance movement can be written.
func (r *CreditRepo) CreditTx(ctx context.Context, tx *sql.Tx, userID uint64, amountCents int64) error {
    if amountCents == 0 {
        // A zero credit would not change the row, and MySQL reports
        // unchanged rows as not affected.
        return nil
    }
    const q = `UPDATE users SET credit_balance_cents = credit_balance_cents + ? WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, amountCents, userID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrUserNotFound
    }
    return nil
}
