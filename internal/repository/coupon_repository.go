package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/bus-ticket-reservation/internal/model"
)

// CouponRepo provides access to coupons and their per-user redemption
// records.  Validation itself lives in the booking engine; this layer
// only knows how to load, lock and mark rows.
type CouponRepo struct {
    db *sql.DB
}

// NewCouponRepo returns a new CouponRepo bound to the given database.
func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{db: db} }

const couponColumns = `id, code, discount_rate, usage_limit, times_used, expires_on, is_active`

func scanCoupon(row *sql.Row) (*model.Coupon, error) {
    var c model.Coupon
    err := row.Scan(&c.ID, &c.Code, &c.DiscountRate, &c.UsageLimit, &c.TimesUsed, &c.ExpiresOn, &c.IsActive)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrCouponNotFound
    }
    if err != nil {
        return nil, err
    }
    return &c, nil
}

// GetByCode loads a coupon outside of any transaction, for the
// read-only validation preview.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
    const q = `SELECT ` + couponColumns + ` FROM coupons WHERE code = ?`
    return scanCoupon(r.db.QueryRowContext(ctx, q, code))
}

// GetByCodeForUpdateTx loads a coupon and locks its row so that the
// usage counter cannot be raced past its limit by concurrent bookings.
func (r *CouponRepo) GetByCodeForUpdateTx(ctx context.Context, tx *sql.Tx, code string) (*model.Coupon, error) {
    const q = `SELECT ` + couponColumns + ` FROM coupons WHERE code = ? FOR UPDATE`
    return scanCoupon(tx.QueryRowContext(ctx, q, code))
}

// RedemptionUsed reports whether the user has already redeemed the
// coupon.  A row with used=0 (granted but unspent) does not block.
func (r *CouponRepo) RedemptionUsed(ctx context.Context, couponID, userID uint64) (bool, error) {
    const q = `SELECT used FROM coupon_redemptions WHERE coupon_id = ? AND user_id = ?`
    var used bool
    err := r.db.QueryRowContext(ctx, q, couponID, userID).Scan(&used)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    return used, err
}

// RedemptionUsedTx is RedemptionUsed inside a transaction, with the
// redemption row locked to close the race between two bookings by the
// same user using the same coupon.
func (r *CouponRepo) RedemptionUsedTx(ctx context.Context, tx *sql.Tx, couponID, userID uint64) (bool, error) {
    const q = `SELECT used FROM coupon_redemptions WHERE coupon_id = ? AND user_id = ? FOR UPDATE`
    var used bool
    err := tx.QueryRowContext(ctx, q, couponID, userID).Scan(&used)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    return used, err
}

// RedeemTx records a redemption: it spends one use of the coupon and
// upserts the user's redemption row to used=1.  The usage-limit guard
// on the UPDATE returns ErrCouponExhausted when the budget ran out
// between validation and redemption, which aborts the surrounding
// booking transaction.  Must run in the same transaction as the
// booking it discounts; a validated-but-unredeemed coupon must never
// leak a discount with no record.
func (r *CouponRepo) RedeemTx(ctx context.Context, tx *sql.Tx, couponID, userID uint64, at time.Time) error {
    const spend = `UPDATE coupons SET times_used = times_used + 1
                   WHERE id = ? AND times_used < usage_limit`
    res, err := tx.ExecContext(ctx, spend, couponID)
    if err != nil {
        return err
    }
    affected, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrCouponExhausted
    }
    const mark = `INSERT INTO coupon_redemptions (coupon_id, user_id, used, used_at)
                  VALUES (?, ?, 1, ?)
                  ON DUPLICATE KEY UPDATE used = 1, used_at = VALUES(used_at)`
    _, err = tx.ExecContext(ctx, mark, couponID, userID, at)
    return err
}

// UserCouponRow is one coupon as seen by a user holding a redemption
// record for it: the coupon terms plus whether this user has spent it.
type UserCouponRow struct {
    CouponID     uint64  `json:"coupon_id"`
    Code         string  `json:"code"`
    DiscountRate float64 `json:"discount_rate"`
    ExpiresOn    string  `json:"expires_on"`
    IsActive     bool    `json:"is_active"`
    Used         bool    `json:"used"`
    UsedAt       *string `json:"used_at,omitempty"`
}

// ListForUser returns the coupons the user has a redemption record
// for, soonest-expiring first.
func (r *CouponRepo) ListForUser(ctx context.Context, userID uint64) ([]UserCouponRow, error) {
    const q = `SELECT c.id, c.code, c.discount_rate,
                      DATE_FORMAT(c.expires_on, '%Y-%m-%d'), c.is_active,
                      cr.used, DATE_FORMAT(cr.used_at, '%Y-%m-%d %T')
               FROM coupon_redemptions cr
               JOIN coupons c ON c.id = cr.coupon_id
               WHERE cr.user_id = ?
               ORDER BY c.expires_on, c.id`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]UserCouponRow, 0)
    for rows.Next() {
        var row UserCouponRow
        var usedAt sql.NullString
        if err := rows.Scan(&row.CouponID, &row.Code, &row.DiscountRate,
            &row.ExpiresOn, &row.IsActive, &row.Used, &usedAt); err != nil {
            return nil, err
        }
        if usedAt.Valid {
            s := usedAt.String
            row.UsedAt = &s
        }
        out = append(out, row)
    }
    return out, rows.Err()
}

// ListAll returns every coupon, newest first.  Exposed to system
// administrators only.
func (r *CouponRepo) ListAll(ctx context.Context) ([]model.Coupon, error) {
    const q = `SELECT ` + couponColumns + ` FROM coupons ORDER BY id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Coupon, 0)
    for rows.Next() {
        var c model.Coupon
        if err := rows.Scan(&c.ID, &c.Code, &c.DiscountRate, &c.UsageLimit,
            &c.TimesUsed, &c.ExpiresOn, &c.IsActive); err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    return out, rows.Err()
}

// Create inserts a new coupon.  Exposed to system administrators only.
func (r *CouponRepo) Create(ctx context.Context, c *model.Coupon) error {
    const q = `INSERT INTO coupons (code, discount_rate, usage_limit, times_used, expires_on, is_active)
               VALUES (?, ?, ?, 0, ?, 1)`
    result, err := r.db.ExecContext(ctx, q, c.Code, c.DiscountRate, c.UsageLimit, c.ExpiresOn)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return nil
}
