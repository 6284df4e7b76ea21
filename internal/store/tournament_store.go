package store

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sehyukim/minton-calendar/internal/pagination"
	"github.com/sehyukim/minton-calendar/internal/tournament"
)

type TournamentStore struct {
	db *sqlx.DB
}

const insertQuery = `
	INSERT INTO tournaments (
		name, start_date, end_date, apply_start_date, apply_end_date,
		region, location, host, organizer, sponsor, sponsorship,
		platform, tournament_url, participant_teams, created_at, updated_at
	) VALUES (
		:name, :start_date, :end_date, :apply_start_date, :apply_end_date,
		:region, :location, :host, :organizer, :sponsor, :sponsorship,
		:platform, :tournament_url, :participant_teams, :created_at, :updated_at
	)
`

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) Create(ctx context.Context, t *tournament.Tournament) (int64, error) {
	res, err := s.db.NamedExecContext(ctx, insertQuery, t)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *TournamentStore) Get(ctx context.Context, id int64) (*tournament.Tournament, error) {
	var t tournament.Tournament
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tournaments WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TournamentStore) List(ctx context.Context) ([]tournament.Tournament, error) {
	var tournaments []tournament.Tournament
	err := s.db.SelectContext(ctx, &tournaments, "SELECT * FROM tournaments ORDER BY start_date ASC, id ASC")
	return tournaments, err
}

// ListByStartDateRange returns rows whose start_date falls in [from, to),
// ordered by (start_date, id) ascending. When after is non-nil only rows
// strictly past that composite key are returned; the predicate and the ORDER
// BY must stay on the same key order or paging will skip or repeat rows.
func (s *TournamentStore) ListByStartDateRange(ctx context.Context, from, to time.Time, after *pagination.Cursor, limit int) ([]tournament.Tournament, error) {
	query := "SELECT * FROM tournaments WHERE start_date >= ? AND start_date < ?"
	args := []any{from, to}

	if after != nil {
		query += " AND (start_date > ? OR (start_date = ? AND id > ?))"
		args = append(args, after.StartDate, after.StartDate, after.ID)
	}

	query += " ORDER BY start_date ASC, id ASC LIMIT ?"
	args = append(args, limit)

	var tournaments []tournament.Tournament
	err := s.db.SelectContext(ctx, &tournaments, query, args...)
	return tournaments, err
}

// Update sets exactly the given columns. Column names come from the service's
// fixed whitelist, never from request input.
func (s *TournamentStore) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for col, v := range fields {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	args = append(args, id)

	query := "UPDATE tournaments SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *TournamentStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	return err
}
