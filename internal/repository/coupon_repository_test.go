package repository

import (
    "context"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestListForUserReturnsRedemptions(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewCouponRepo(db)

    rows := sqlmock.NewRows([]string{
        "id", "code", "discount_rate", "expires_on", "is_active", "used", "used_at",
    }).
        AddRow(3, "SUMMER10", 10.0, "2025-09-30", true, true, "2025-06-01 12:00:00").
        AddRow(7, "WELCOME5", 5.0, "2025-12-31", true, false, nil)
    mock.ExpectQuery(regexp.QuoteMeta(`FROM coupon_redemptions cr`)).
        WithArgs(4).
        WillReturnRows(rows)

    got, err := repo.ListForUser(context.Background(), 4)
    require.NoError(t, err)
    require.Len(t, got, 2)

    assert.Equal(t, "SUMMER10", got[0].Code)
    assert.True(t, got[0].Used)
    require.NotNil(t, got[0].UsedAt)
    assert.Equal(t, "2025-06-01 12:00:00", *got[0].UsedAt)

    assert.Equal(t, "WELCOME5", got[1].Code)
    assert.False(t, got[1].Used)
    assert.Nil(t, got[1].UsedAt)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForUserEmpty(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewCouponRepo(db)

    mock.ExpectQuery(regexp.QuoteMeta(`FROM coupon_redemptions cr`)).
        WithArgs(9).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "code", "discount_rate", "expires_on", "is_active", "used", "used_at",
        }))

    got, err := repo.ListForUser(context.Background(), 9)
    require.NoError(t, err)
    assert.NotNil(t, got)
    assert.Empty(t, got)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllReturnsEveryCoupon(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewCouponRepo(db)

    expires := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
    rows := sqlmock.NewRows([]string{
        "id", "code", "discount_rate", "usage_limit", "times_used", "expires_on", "is_active",
    }).
        AddRow(8, "AUTUMN20", 20.0, 100, 17, expires, true).
        AddRow(3, "SUMMER10", 10.0, 50, 50, expires, false)
    mock.ExpectQuery(regexp.QuoteMeta(`FROM coupons ORDER BY id DESC`)).
        WillReturnRows(rows)

    got, err := repo.ListAll(context.Background())
    require.NoError(t, err)
    require.Len(t, got, 2)
    assert.Equal(t, uint64(8), got[0].ID)
    assert.Equal(t, "AUTUMN20", got[0].Code)
    assert.Equal(t, uint32(17), got[0].TimesUsed)
    assert.False(t, got[1].IsActive)
    assert.NoError(t, mock.ExpectationsWereMet())
}
