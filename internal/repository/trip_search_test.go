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

func TestOrderBy(t *testing.T) {
    cases := []struct {
        key   TripSortKey
        order TripSortOrder
        want  string
    }{
        {"", "", "t.departure_date, t.departure_time ASC"},
        {SortByDeparture, SortAsc, "t.departure_date, t.departure_time ASC"},
        {SortByPrice, SortDesc, "t.price_cents DESC"},
        {SortByDuration, "", "t.duration_minutes ASC"},
    }
    for _, c := range cases {
        got, err := OrderBy(c.key, c.order)
        require.NoError(t, err)
        assert.Equal(t, c.want, got)
    }

    _, err := OrderBy("price; DROP TABLE trips", SortAsc)
    assert.Error(t, err)
    _, err = OrderBy(SortByPrice, "sideways")
    assert.Error(t, err)
}

func TestSearchFiltersAndPaginates(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewTripRepo(db)

    date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

    mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM trips t WHERE t.status = 'Active' AND t.available_seats > 0 AND t.origin_city_id = ? AND t.dest_city_id = ? AND t.departure_date = ?`)).
        WithArgs(1, 2, "2025-07-01").
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectQuery(`ORDER BY t.price_cents DESC`).
        WithArgs(1, 2, "2025-07-01", 10, 10).
        WillReturnRows(sqlmock.NewRows([]string{
            "id", "name", "name", "name", "date", "departure_time", "arrival_time",
            "duration_minutes", "price_cents", "total_seats", "available_seats", "status",
        }).AddRow(9, "Acme Lines", "Springfield", "Shelbyville", "2025-07-01",
            "08:30:00", "12:30:00", 240, 35000, 40, 12, "Active"))

    trips, total, err := repo.Search(context.Background(), TripSearchQuery{
        OriginCityID: 1,
        DestCityID:   2,
        Date:         date,
        SortBy:       SortByPrice,
        SortOrder:    SortDesc,
        Page:         2,
        PageSize:     10,
    })
    require.NoError(t, err)
    assert.Equal(t, int64(1), total)
    require.Len(t, trips, 1)
    assert.Equal(t, uint64(9), trips[0].ID)
    assert.Equal(t, 350.0, trips[0].Price)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRejectsUnknownSortKey(t *testing.T) {
    db, _, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    _, _, err = NewTripRepo(db).Search(context.Background(), TripSearchQuery{SortBy: "rating"})
    assert.Error(t, err)
}
