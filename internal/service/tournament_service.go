package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sehyukim/minton-calendar/internal/pagination"
	"github.com/sehyukim/minton-calendar/internal/store"
	"github.com/sehyukim/minton-calendar/internal/tournament"
	"github.com/sehyukim/minton-calendar/internal/utils"
)

var ErrNotFound = errors.New("tournament not found")

// ValidationError marks caller mistakes. They are reported before any query
// runs, so a failing request has no partial effect.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

const defaultPageLimit = 10

type TournamentService struct {
	store *store.TournamentStore
	clock clockwork.Clock
}

func NewTournamentService(store *store.TournamentStore, clock clockwork.Clock) *TournamentService {
	return &TournamentService{store: store, clock: clock}
}

type MonthPage struct {
	Items      []tournament.Response `json:"items"`
	NextCursor *string               `json:"nextCursor"`
	HasMore    bool                  `json:"hasMore"`
}

func (s *TournamentService) ListAll(ctx context.Context) ([]tournament.Response, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.project(rows), nil
}

// GetByID returns nil without error when no such row exists; the lookup
// endpoint reports a missing tournament as a null body, not an error.
func (s *TournamentService) GetByID(ctx context.Context, id int64) (*tournament.Response, error) {
	t, err := s.store.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := tournament.Project(t, s.clock.Now())
	return &resp, nil
}

// ListMonth pages through tournaments starting in the given month. Fetching
// limit+1 rows detects a further page without a count query; the cursor of the
// last retained row resumes the scan strictly past it.
func (s *TournamentService) ListMonth(ctx context.Context, year, month int, cursorToken string, limit int) (*MonthPage, error) {
	if year < 1 {
		return nil, validationErrorf("year %d is out of range", year)
	}
	if month < 1 || month > 12 {
		return nil, validationErrorf("month %d is out of range, want 1-12", month)
	}
	if limit == 0 {
		limit = defaultPageLimit
	} else if limit < 1 {
		// Undefined by the original API; clamp rather than reject.
		limit = 1
	}

	windowStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 1, 0)

	var after *pagination.Cursor
	if cursorToken != "" {
		if c, err := pagination.Decode(cursorToken); err == nil {
			after = &c
		}
		// An undecodable cursor restarts the listing from the beginning.
	}

	rows, err := s.store.ListByStartDateRange(ctx, windowStart, windowEnd, after, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	page := &MonthPage{Items: s.project(rows), HasMore: hasMore}
	if hasMore {
		last := rows[len(rows)-1]
		token := pagination.Encode(pagination.Cursor{StartDate: last.StartDate, ID: last.ID})
		page.NextCursor = &token
	}
	return page, nil
}

func (s *TournamentService) Create(ctx context.Context, req *tournament.CreateRequest) (*tournament.Response, error) {
	t, err := s.fromCreateRequest(req)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id

	resp := tournament.Project(t, s.clock.Now())
	return &resp, nil
}

// Update applies a partial patch. A field omitted from the request leaves the
// stored value unchanged; a field explicitly set to null clears it. Existence
// is re-checked immediately before the write so a missing row surfaces as
// not-found rather than a silent no-op.
func (s *TournamentService) Update(ctx context.Context, id int64, req *tournament.UpdateRequest) (*tournament.Response, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields, err := updateFields(req)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now().UTC()
		if err := s.store.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := tournament.Project(t, s.clock.Now())
	return &resp, nil
}

func (s *TournamentService) Delete(ctx context.Context, id int64) (*tournament.Response, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	resp := tournament.Project(t, s.clock.Now())
	return &resp, nil
}

func (s *TournamentService) project(rows []tournament.Tournament) []tournament.Response {
	today := s.clock.Now()
	items := make([]tournament.Response, 0, len(rows))
	for i := range rows {
		items = append(items, tournament.Project(&rows[i], today))
	}
	return items
}

func (s *TournamentService) fromCreateRequest(req *tournament.CreateRequest) (*tournament.Tournament, error) {
	if req.Name == "" {
		return nil, validationErrorf("name is required")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, validationErrorf("startDate and endDate are required")
	}

	startDate, err := tournament.ParseDate(req.StartDate)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	endDate, err := tournament.ParseDate(req.EndDate)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	applyStart, err := parseOptionalDate(req.ApplyStartDate)
	if err != nil {
		return nil, err
	}
	applyEnd, err := parseOptionalDate(req.ApplyEndDate)
	if err != nil {
		return nil, err
	}

	if req.ParticipantTeams != nil && *req.ParticipantTeams < 0 {
		return nil, validationErrorf("participantTeams must not be negative")
	}

	now := s.clock.Now().UTC()
	return &tournament.Tournament{
		Name:             req.Name,
		StartDate:        startDate,
		EndDate:          endDate,
		ApplyStartDate:   applyStart,
		ApplyEndDate:     applyEnd,
		Region:           normalizeText(req.Region),
		Location:         normalizeText(req.Location),
		Host:             normalizeText(req.Host),
		Organizer:        normalizeText(req.Organizer),
		Sponsor:          normalizeText(req.Sponsor),
		Sponsorship:      normalizeText(req.Sponsorship),
		Platform:         normalizeText(req.Platform),
		TournamentURL:    normalizeText(req.TournamentURL),
		ParticipantTeams: req.ParticipantTeams,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func updateFields(req *tournament.UpdateRequest) (map[string]any, error) {
	fields := make(map[string]any)

	if req.Name.Set {
		if req.Name.Value == nil || *req.Name.Value == "" {
			return nil, validationErrorf("name cannot be cleared")
		}
		fields["name"] = *req.Name.Value
	}

	if err := setRequiredDate(fields, "start_date", req.StartDate); err != nil {
		return nil, err
	}
	if err := setRequiredDate(fields, "end_date", req.EndDate); err != nil {
		return nil, err
	}
	if err := setOptionalDate(fields, "apply_start_date", req.ApplyStartDate); err != nil {
		return nil, err
	}
	if err := setOptionalDate(fields, "apply_end_date", req.ApplyEndDate); err != nil {
		return nil, err
	}

	setText(fields, "region", req.Region)
	setText(fields, "location", req.Location)
	setText(fields, "host", req.Host)
	setText(fields, "organizer", req.Organizer)
	setText(fields, "sponsor", req.Sponsor)
	setText(fields, "sponsorship", req.Sponsorship)
	setText(fields, "platform", req.Platform)
	setText(fields, "tournament_url", req.TournamentURL)

	if req.ParticipantTeams.Set {
		if req.ParticipantTeams.Value == nil {
			fields["participant_teams"] = nil
		} else if *req.ParticipantTeams.Value < 0 {
			return nil, validationErrorf("participantTeams must not be negative")
		} else {
			fields["participant_teams"] = *req.ParticipantTeams.Value
		}
	}

	return fields, nil
}

func setRequiredDate(fields map[string]any, col string, o tournament.Optional[string]) error {
	if !o.Set {
		return nil
	}
	if o.Value == nil || *o.Value == "" {
		return validationErrorf("%s cannot be cleared", col)
	}
	t, err := tournament.ParseDate(*o.Value)
	if err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	fields[col] = t
	return nil
}

func setOptionalDate(fields map[string]any, col string, o tournament.Optional[string]) error {
	if !o.Set {
		return nil
	}
	if o.Value == nil || *o.Value == "" {
		fields[col] = nil
		return nil
	}
	t, err := tournament.ParseDate(*o.Value)
	if err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	fields[col] = t
	return nil
}

func setText(fields map[string]any, col string, o tournament.Optional[string]) {
	if !o.Set {
		return
	}
	if o.Value == nil {
		fields[col] = nil
		return
	}
	fields[col] = utils.StringOrNil(*o.Value)
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := tournament.ParseDate(*s)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	return &t, nil
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringOrNil(*s)
}
