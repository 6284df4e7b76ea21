package tournament

import (
	"fmt"
	"time"
)

type Tournament struct {
	ID               int64      `db:"id"`
	Name             string     `db:"name"`
	StartDate        time.Time  `db:"start_date"`
	EndDate          time.Time  `db:"end_date"`
	ApplyStartDate   *time.Time `db:"apply_start_date"`
	ApplyEndDate     *time.Time `db:"apply_end_date"`
	Region           *string    `db:"region"`
	Location         *string    `db:"location"`
	Host             *string    `db:"host"`
	Organizer        *string    `db:"organizer"`
	Sponsor          *string    `db:"sponsor"`
	Sponsorship      *string    `db:"sponsorship"`
	Platform         *string    `db:"platform"`
	TournamentURL    *string    `db:"tournament_url"`
	ParticipantTeams *int       `db:"participant_teams"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// ParseDate accepts a bare ISO date ("2024-11-20") or a full RFC 3339
// timestamp. The result is always UTC midnight; stored dates have to share a
// single representation or the (start_date, id) ordering breaks.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return midnightUTC(t.UTC()), nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
