package repository

import (
    "context"
    "database/sql"
    "fmt"
)

// TicketCodeRepo assigns human-readable ticket codes.  Codes are
// monotonic within a calendar year and come from a per-year counter
// row, so the sequence survives restarts and stays correct under
// concurrent bookings; there is no process-global counter anywhere.
type TicketCodeRepo struct {
    db *sql.DB
}

// NewTicketCodeRepo returns a new TicketCodeRepo bound to the given
// database.
func NewTicketCodeRepo(db *sql.DB) *TicketCodeRepo { return &TicketCodeRepo{db: db} }

// NextTx allocates the next code for the given year inside the
// booking's transaction.  The LAST_INSERT_ID trick makes the
// increment-and-read a single atomic statement: the first booking of a
// year inserts the counter row at 1, every later one bumps it.  If the
// transaction rolls back the sequence value is lost, leaving a gap,
// which is acceptable; codes must be unique and increasing, not dense.
func (r *TicketCodeRepo) NextTx(ctx context.Context, tx *sql.Tx, year int) (string, error) {
    const q = `INSERT INTO ticket_sequences (year, seq) VALUES (?, 1)
               ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
    result, err := tx.ExecContext(ctx, q, year)
    if err != nil {
        return "", err
    }
    seq, err := result.LastInsertId()
    if err != nil {
        return "", err
    }
    if seq == 0 {
        // Fresh insert path: no LAST_INSERT_ID was set, the new row
        // holds the initial value 1.
        seq = 1
    }
    return fmt.Sprintf("TKT-%d-%06d", year, seq), nil
}
