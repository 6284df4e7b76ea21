package tournament

import "encoding/json"

// Optional distinguishes a field omitted from a PATCH body from one explicitly
// set to null. The zero value means absent.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type CreateRequest struct {
	Name             string  `json:"name"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	ApplyStartDate   *string `json:"applyStartDate"`
	ApplyEndDate     *string `json:"applyEndDate"`
	Region           *string `json:"region"`
	Location         *string `json:"location"`
	Host             *string `json:"host"`
	Organizer        *string `json:"organizer"`
	Sponsor          *string `json:"sponsor"`
	Sponsorship      *string `json:"sponsorship"`
	Platform         *string `json:"platform"`
	TournamentURL    *string `json:"tournamentUrl"`
	ParticipantTeams *int    `json:"participantTeams"`
}

type UpdateRequest struct {
	Name             Optional[string] `json:"name"`
	StartDate        Optional[string] `json:"startDate"`
	EndDate          Optional[string] `json:"endDate"`
	ApplyStartDate   Optional[string] `json:"applyStartDate"`
	ApplyEndDate     Optional[string] `json:"applyEndDate"`
	Region           Optional[string] `json:"region"`
	Location         Optional[string] `json:"location"`
	Host             Optional[string] `json:"host"`
	Organizer        Optional[string] `json:"organizer"`
	Sponsor          Optional[string] `json:"sponsor"`
	Sponsorship      Optional[string] `json:"sponsorship"`
	Platform         Optional[string] `json:"platform"`
	TournamentURL    Optional[string] `json:"tournamentUrl"`
	ParticipantTeams Optional[int]    `json:"participantTeams"`
}
