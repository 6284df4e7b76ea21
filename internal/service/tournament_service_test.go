package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/sehyukim/minton-calendar/internal/pagination"
	"github.com/sehyukim/minton-calendar/internal/store"
	"github.com/sehyukim/minton-calendar/internal/tournament"
	"github.com/sehyukim/minton-calendar/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fake clock pins "today" to 2024-11-05 so D-day assertions are stable.
var testNow = time.Date(2024, time.November, 5, 9, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*TournamentService, *clockwork.FakeClock) {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	t.Cleanup(func() { database.Close() })

	// An in-memory SQLite database exists per connection.
	database.SetMaxOpenConns(1)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	clock := clockwork.NewFakeClockAt(testNow)
	return NewTournamentService(store.NewTournamentStore(database), clock), clock
}

func createTournament(t *testing.T, svc *TournamentService, name, startDate string) *tournament.Response {
	t.Helper()

	resp, err := svc.Create(context.Background(), &tournament.CreateRequest{
		Name:      name,
		StartDate: startDate,
		EndDate:   startDate,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  tournament.CreateRequest
	}{
		{"missing name", tournament.CreateRequest{StartDate: "2024-11-05", EndDate: "2024-11-06"}},
		{"missing start date", tournament.CreateRequest{Name: "대회", EndDate: "2024-11-06"}},
		{"missing end date", tournament.CreateRequest{Name: "대회", StartDate: "2024-11-05"}},
		{"bad date", tournament.CreateRequest{Name: "대회", StartDate: "05.11.2024", EndDate: "2024-11-06"}},
		{"negative team count", tournament.CreateRequest{
			Name: "대회", StartDate: "2024-11-05", EndDate: "2024-11-06",
			ParticipantTeams: utils.Ptr(-1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateProjectsPlaceholders(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Create(context.Background(), &tournament.CreateRequest{
		Name:      "전국 배드민턴 대회",
		StartDate: "2024-11-05",
		EndDate:   "2024-11-06",
		Region:    utils.Ptr("서울"),
		Organizer: utils.Ptr("   "), // whitespace collapses to undecided
	})
	require.NoError(t, err)

	assert.Equal(t, "2024.11.5 ~ 2024.11.6", resp.TournamentPeriod)
	assert.Equal(t, "0000.0.0 ~ 0000.0.0", resp.ApplyPeriod)
	assert.Equal(t, "서울", resp.Region)
	assert.Equal(t, tournament.Undecided, resp.Organizer)
	assert.Equal(t, tournament.Undecided, resp.ParticipantTeams)
	assert.Equal(t, 0, resp.DDay)
}

func TestGetByIDMissingIsNil(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListMonthValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, month := range []int{0, 13, -3} {
		_, err := svc.ListMonth(ctx, 2024, month, "", 0)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "month %d", month)
	}

	_, err := svc.ListMonth(ctx, 0, 11, "", 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListMonthPagination(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a := createTournament(t, svc, "nov 5 a", "2024-11-05")
	b := createTournament(t, svc, "nov 5 b", "2024-11-05")
	c := createTournament(t, svc, "nov 20", "2024-11-20")

	page, err := svc.ListMonth(ctx, 2024, 11, "", 2)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, a.ID, page.Items[0].ID)
	assert.Equal(t, b.ID, page.Items[1].ID)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	decoded, err := pagination.Decode(*page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, b.ID, decoded.ID)

	page, err = svc.ListMonth(ctx, 2024, 11, *page.NextCursor, 2)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, c.ID, page.Items[0].ID)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestListMonthCompleteness(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// Out-of-window rows that must never appear.
	createTournament(t, svc, "october", "2024-10-31")
	createTournament(t, svc, "december", "2024-12-01")

	var want []int64
	for _, startDate := range []string{
		"2024-11-05", "2024-11-05", "2024-11-05",
		"2024-11-12", "2024-11-12",
		"2024-11-20", "2024-11-25",
	} {
		resp := createTournament(t, svc, "in window", startDate)
		want = append(want, resp.ID)
	}

	// Walking every page with the previous nextCursor yields the full set,
	// in (startDate, id) order, with no duplicates or gaps.
	var got []int64
	cursor := ""
	for {
		page, err := svc.ListMonth(ctx, 2024, 11, cursor, 3)
		require.NoError(t, err)
		for _, item := range page.Items {
			got = append(got, item.ID)
		}
		if !page.HasMore {
			assert.Nil(t, page.NextCursor)
			break
		}
		require.NotNil(t, page.NextCursor)
		cursor = *page.NextCursor
	}

	assert.Equal(t, want, got)
}

func TestListMonthDefaultAndClampedLimit(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		createTournament(t, svc, "bulk", "2024-11-10")
	}

	// Absent limit falls back to 10.
	page, err := svc.ListMonth(ctx, 2024, 11, "", 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasMore)

	// Non-positive limits clamp to one item per page.
	page, err = svc.ListMonth(ctx, 2024, 11, "", -5)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasMore)
}

func TestListMonthIgnoresBadCursor(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a := createTournament(t, svc, "nov 5", "2024-11-05")

	page, err := svc.ListMonth(ctx, 2024, 11, "not-a-cursor", 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, a.ID, page.Items[0].ID)
}

func TestUpdateTriState(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &tournament.CreateRequest{
		Name:      "원본",
		StartDate: "2024-11-05",
		EndDate:   "2024-11-06",
		Location:  utils.Ptr("장충체육관"),
		Host:      utils.Ptr("서울시"),
	})
	require.NoError(t, err)

	// location is cleared, host is replaced, everything omitted stays put.
	var req tournament.UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"location": null, "host": "대한배드민턴협회"}`), &req))

	updated, err := svc.Update(ctx, created.ID, &req)
	require.NoError(t, err)

	assert.Equal(t, "원본", updated.Name)
	assert.Equal(t, tournament.Undecided, updated.Location)
	assert.Equal(t, "대한배드민턴협회", updated.Host)
	assert.Equal(t, created.TournamentPeriod, updated.TournamentPeriod)
}

func TestUpdateRejectsClearingRequiredFields(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := createTournament(t, svc, "원본", "2024-11-05")

	for _, body := range []string{`{"name": null}`, `{"startDate": null}`, `{"endDate": null}`} {
		var req tournament.UpdateRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		_, err := svc.Update(ctx, created.ID, &req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "body %s", body)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := setupService(t)

	var req tournament.UpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": "새 이름"}`), &req))

	_, err := svc.Update(context.Background(), 999, &req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created := createTournament(t, svc, "지울 대회", "2024-11-05")

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	resp, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDDayFollowsClock(t *testing.T) {
	svc, clock := setupService(t)
	ctx := context.Background()

	created := createTournament(t, svc, "내일 시작", "2024-11-06")
	assert.Equal(t, 1, created.DDay)

	clock.Advance(48 * time.Hour)

	resp, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, -1, resp.DDay)
}
