package tournament

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// Undecided is the placeholder rendered for optional fields with no value.
	Undecided = "미정"

	emptyPeriod = "0000.0.0 ~ 0000.0.0"
)

// Response is the display shape returned to clients, distinct from the stored
// row: dates are collapsed into period strings and missing optional fields
// render as placeholders.
type Response struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	TournamentPeriod string    `json:"tournamentPeriod"`
	ApplyPeriod      string    `json:"applyPeriod"`
	Region           string    `json:"region"`
	Location         string    `json:"location"`
	ParticipantTeams string    `json:"participantTeams"`
	Host             string    `json:"host"`
	Organizer        string    `json:"organizer"`
	Sponsor          string    `json:"sponsor"`
	Sponsorship      string    `json:"sponsorship"`
	Platform         string    `json:"platform"`
	TournamentURL    string    `json:"tournamentUrl"`
	DDay             int       `json:"dDay"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Project builds the display record for t. The caller supplies "today" so the
// D-day count stays testable.
func Project(t *Tournament, today time.Time) Response {
	applyPeriod := emptyPeriod
	if t.ApplyStartDate != nil && t.ApplyEndDate != nil {
		applyPeriod = formatPeriod(*t.ApplyStartDate, *t.ApplyEndDate)
	}

	return Response{
		ID:               t.ID,
		Name:             t.Name,
		TournamentPeriod: formatPeriod(t.StartDate, t.EndDate),
		ApplyPeriod:      applyPeriod,
		Region:           textOrUndecided(t.Region),
		Location:         textOrUndecided(t.Location),
		ParticipantTeams: intOrUndecided(t.ParticipantTeams),
		Host:             textOrUndecided(t.Host),
		Organizer:        textOrUndecided(t.Organizer),
		Sponsor:          textOrUndecided(t.Sponsor),
		Sponsorship:      textOrUndecided(t.Sponsorship),
		Platform:         textOrUndecided(t.Platform),
		TournamentURL:    textOrUndecided(t.TournamentURL),
		DDay:             dDay(t.StartDate, today),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// formatDate renders YEAR.MONTH.DAY without zero padding, e.g. "2024.11.5".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d.%d.%d", t.Year(), int(t.Month()), t.Day())
}

func formatPeriod(from, to time.Time) string {
	return formatDate(from) + " ~ " + formatDate(to)
}

// dDay counts calendar days from today to the start date: 0 when the
// tournament starts today, negative once it has started. Both dates are
// reduced to their calendar components before subtracting so time of day and
// zone offsets cannot skew the count.
func dDay(start, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today) / (24 * time.Hour))
}

func textOrUndecided(s *string) string {
	if s == nil {
		return Undecided
	}
	return *s
}

func intOrUndecided(n *int) string {
	if n == nil {
		return Undecided
	}
	return strconv.Itoa(*n)
}
