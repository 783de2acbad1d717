/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"

	"github.com/google/uuid"
)

const DefaultTotalRounds = 7

// Phase is the round controller's position in the round cycle.
type Phase int

const (
	PhaseAwaitingPairings Phase = iota
	PhaseRoundInProgress
	PhaseReadyToAdvance
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPairings:
		return "awaiting pairings"
	case PhaseRoundInProgress:
		return "round in progress"
	case PhaseReadyToAdvance:
		return "ready to advance"
	case PhaseCompleted:
		return "completed"
	default:
		return "?"
	}
}

// State is a complete tournament snapshot. Every transition method takes the
// receiver by value and returns a new State; the receiver is never modified,
// so a failed transition leaves the caller's state as it was.
type State struct {
	ID          string        `json:"id"`
	Round       int           `json:"currentRound"`
	TotalRounds int           `json:"totalRounds"`
	Registry    []Registrant  `json:"registry"`
	Competitors []Competitor  `json:"players"`
	Pairings    []Pairing     `json:"pairings"`
	ByeID       string        `json:"byeId,omitempty"`
	Results     []RoundRecord `json:"results"`
	Completed   bool          `json:"tournamentCompleted"`
}

// NewState starts a tournament over the given registry. A totalRounds of 0
// or less selects DefaultTotalRounds. Registrant ids must be unique.
func NewState(registry []Registrant, totalRounds int) (State, error) {
	if err := validateRegistry(registry); err != nil {
		return State{}, err
	}
	return newState(registry, totalRounds), nil
}

// validateRegistry rejects a registry that names the same id twice. Empty ids
// are assigned later and never collide.
func validateRegistry(registry []Registrant) error {
	seen := make(map[string]bool, len(registry))
	for _, r := range registry {
		if r.ID == "" {
			continue
		}
		if seen[r.ID] {
			return fmt.Errorf("%s: %w", r.ID, ErrDuplicateCompetitor)
		}
		seen[r.ID] = true
	}
	return nil
}

func newState(registry []Registrant, totalRounds int) State {
	if totalRounds <= 0 {
		totalRounds = DefaultTotalRounds
	}
	reg := make([]Registrant, len(registry))
	copy(reg, registry)
	for i := range reg {
		if reg[i].ID == "" {
			reg[i].ID = uuid.NewString()
		}
	}

	return State{
		ID:          uuid.NewString(),
		Round:       1,
		TotalRounds: totalRounds,
		Registry:    reg,
		Competitors: PrepareCompetitors(reg),
		Pairings:    []Pairing{},
		Results:     []RoundRecord{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Registry = append([]Registrant{}, s.Registry...)
	out.Competitors = cloneCompetitors(s.Competitors)
	out.Pairings = append([]Pairing{}, s.Pairings...)
	out.Results = make([]RoundRecord, len(s.Results))
	for i, rec := range s.Results {
		rec.Games = append([]GameResult{}, rec.Games...)
		out.Results[i] = rec
	}

	return out
}

// Phase derives the controller phase from the snapshot.
func (s State) Phase() Phase {
	if s.Round > s.TotalRounds {
		return PhaseCompleted
	}
	if len(s.Pairings) == 0 {
		return PhaseAwaitingPairings
	}
	if allFinished(s.Pairings) {
		return PhaseReadyToAdvance
	}
	return PhaseRoundInProgress
}

// Competitor looks up a competitor by id.
func (s State) Competitor(id string) (Competitor, bool) {
	for _, c := range s.Competitors {
		if c.ID == id {
			return c, true
		}
	}
	return Competitor{}, false
}

// Generate produces the pairings for the current round.
func (s State) Generate(opts Options) (State, error) {
	if len(s.Competitors) < 2 {
		return s, fmt.Errorf("%d competitor(s): %w", len(s.Competitors),
			ErrInsufficientCompetitors)
	}
	if s.Phase() == PhaseCompleted {
		return s, ErrTournamentComplete
	}
	if len(s.Pairings) > 0 {
		return s, fmt.Errorf("round %d: %w", s.Round, ErrPairingsExist)
	}

	next := s.Clone()
	res, err := GeneratePairingsWithOptions(next.Competitors, next.Round, opts)
	if err != nil {
		return s, fmt.Errorf("round %d: %w", s.Round, err)
	}
	next.Pairings = res.Pairings
	next.ByeID = res.ByeID

	return next, nil
}

// StartGame marks a not yet started board as ongoing.
func (s State) StartGame(table int) (State, error) {
	idx := findTable(s.Pairings, table)
	if idx == -1 || s.Pairings[idx].Status != StatusNotStarted {
		return s, fmt.Errorf("table %d: %w", table, ErrInvalidTableReference)
	}
	next := s.Clone()
	next.Pairings[idx].Status = StatusOngoing

	return next, nil
}

// SubmitResult records the result of one board.
func (s State) SubmitResult(table int, result Result) (State, error) {
	pairings, err := SubmitResult(s.Pairings, table, result)
	if err != nil {
		return s, err
	}
	next := s.Clone()
	next.Pairings = pairings

	return next, nil
}

// Advance applies the finished round to the standings and moves to the next
// round, or to the completed phase after the last round.
func (s State) Advance() (State, error) {
	if s.Phase() == PhaseCompleted {
		return s, ErrTournamentComplete
	}
	if len(s.Pairings) == 0 || !allFinished(s.Pairings) {
		return s, fmt.Errorf("round %d: %w", s.Round, ErrRoundNotReady)
	}

	next := s.Clone()
	games := make([]GameResult, 0, len(next.Pairings))
	for _, p := range next.Pairings {
		games = append(games, GameResult{
			WhiteID: p.WhiteID,
			BlackID: p.BlackID,
			Result:  p.Result,
		})
	}
	next.Competitors = AdvanceRound(next.Competitors, games)
	next.Results = append(next.Results, RoundRecord{
		Round: next.Round,
		Games: games,
		ByeID: next.ByeID,
	})
	next.Pairings = []Pairing{}
	next.ByeID = ""
	next.Round++
	next.Completed = next.Round > next.TotalRounds

	return next, nil
}

// Reset discards all pairing and result history and rebuilds the
// competitors from the registry.
func (s State) Reset() State {
	next := newState(s.Registry, s.TotalRounds)
	next.ID = s.ID
	return next
}

// AddCompetitor registers a late entrant. It is only allowed between rounds;
// the entrant starts with no points.
func (s State) AddCompetitor(r Registrant) (State, error) {
	switch s.Phase() {
	case PhaseCompleted:
		return s, ErrTournamentComplete
	case PhaseAwaitingPairings:
	default:
		return s, fmt.Errorf("round %d: %w", s.Round, ErrPairingsExist)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	for _, reg := range s.Registry {
		if reg.ID == r.ID {
			return s, fmt.Errorf("%s: %w", r.ID, ErrDuplicateCompetitor)
		}
	}

	next := s.Clone()
	next.Registry = append(next.Registry, r)
	next.Competitors = append(next.Competitors, newCompetitor(r))

	return next, nil
}

// Reseed replaces the registry. It is only allowed before the first round
// has been paired.
func (s State) Reseed(registry []Registrant) (State, error) {
	if s.Round != 1 || len(s.Pairings) > 0 {
		return s, ErrTournamentStarted
	}
	next, err := NewState(registry, s.TotalRounds)
	if err != nil {
		return s, err
	}
	next.ID = s.ID

	return next, nil
}

// SubmitResult returns a copy of pairings with the result recorded on the
// given table. The table must exist and must not already be finished.
func SubmitResult(pairings []Pairing, table int, result Result) ([]Pairing, error) {
	if !result.Valid() {
		return pairings, fmt.Errorf("%q: %w", result, ErrInvalidResult)
	}
	idx := findTable(pairings, table)
	if idx == -1 || pairings[idx].Status == StatusFinished {
		return pairings, fmt.Errorf("table %d: %w", table, ErrInvalidTableReference)
	}

	out := append([]Pairing{}, pairings...)
	out[idx].Result = result
	out[idx].Status = StatusFinished

	return out, nil
}

func findTable(pairings []Pairing, table int) int {
	for idx, p := range pairings {
		if p.Table == table {
			return idx
		}
	}
	return -1
}

func allFinished(pairings []Pairing) bool {
	for _, p := range pairings {
		if p.Status != StatusFinished {
			return false
		}
	}
	return true
}
