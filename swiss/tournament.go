/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sync"
)

// Tournament is the round controller. It owns a State and serializes every
// transition behind one lock; readers get deep copies taken under the same
// lock.
type Tournament struct {
	mu    sync.RWMutex
	state State
	opts  Options
}

// NewTournament starts a tournament over registry. Registrant ids must be
// unique.
func NewTournament(registry []Registrant, totalRounds int,
	opts Options) (*Tournament, error) {

	s, err := NewState(registry, totalRounds)
	if err != nil {
		return nil, err
	}

	return &Tournament{
		state: s,
		opts:  opts,
	}, nil
}

// Restore resumes a tournament from a previously saved snapshot.
func Restore(s State, opts Options) *Tournament {
	s = s.Clone()
	if s.TotalRounds <= 0 {
		s.TotalRounds = DefaultTotalRounds
	}
	if s.Round <= 0 {
		s.Round = 1
	}
	s.Completed = s.Round > s.TotalRounds

	return &Tournament{state: s, opts: opts}
}

func (t *Tournament) apply(fn func(State) (State, error)) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := fn(t.state)
	if err != nil {
		return t.state.Clone(), err
	}
	t.state = next

	return next.Clone(), nil
}

// Generate pairs the current round.
func (t *Tournament) Generate() ([]Pairing, error) {
	s, err := t.apply(func(s State) (State, error) {
		return s.Generate(t.opts)
	})
	if err != nil {
		t.opts.logger().Info().Err(err).Int("round", s.Round).
			Msg("swiss.generate: rejected")
		return nil, err
	}
	t.opts.logger().Info().
		Int("round", s.Round).
		Int("tables", len(s.Pairings)).
		Str("bye", s.ByeID).
		Msg("swiss.generate: round paired")

	return s.Pairings, nil
}

// StartGame marks a board as ongoing.
func (t *Tournament) StartGame(table int) error {
	_, err := t.apply(func(s State) (State, error) {
		return s.StartGame(table)
	})
	return err
}

// SubmitResult records a board result. Standings are not touched until
// Advance.
func (t *Tournament) SubmitResult(table int, result Result) error {
	_, err := t.apply(func(s State) (State, error) {
		return s.SubmitResult(table, result)
	})
	if err != nil {
		t.opts.logger().Info().Err(err).Int("table", table).
			Msg("swiss.result: rejected")
	}
	return err
}

// Advance closes the current round and returns the new standings.
func (t *Tournament) Advance() ([]Competitor, error) {
	s, err := t.apply(func(s State) (State, error) {
		return s.Advance()
	})
	if err != nil {
		t.opts.logger().Info().Err(err).Int("round", s.Round).
			Msg("swiss.advance: rejected")
		return nil, err
	}

	log := t.opts.logger()
	if s.Completed {
		ev := log.Info().Int("rounds", s.TotalRounds)
		if len(s.Competitors) > 0 {
			ev = ev.Str("champion", s.Competitors[0].Name).
				Float64("points", s.Competitors[0].Points)
		}
		ev.Msg("swiss.advance: tournament completed")
	} else {
		log.Info().Int("round", s.Round).Msg("swiss.advance: next round")
	}

	return s.Competitors, nil
}

// Reset returns the tournament to round 1 with zeroed competitors.
func (t *Tournament) Reset() {
	_, _ = t.apply(func(s State) (State, error) {
		return s.Reset(), nil
	})
	t.opts.logger().Info().Msg("swiss.reset: tournament reset")
}

// AddCompetitor registers a late entrant between rounds.
func (t *Tournament) AddCompetitor(r Registrant) error {
	_, err := t.apply(func(s State) (State, error) {
		return s.AddCompetitor(r)
	})
	return err
}

// Reseed replaces the registry before the first round is paired.
func (t *Tournament) Reseed(registry []Registrant) error {
	_, err := t.apply(func(s State) (State, error) {
		return s.Reseed(registry)
	})
	return err
}

// Snapshot returns a copy of the complete tournament state.
func (t *Tournament) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state.Clone()
}

// Standings returns the competitors in their current ranked order.
func (t *Tournament) Standings() []Competitor {
	return t.Snapshot().Competitors
}

// Pairings returns the current round's pairings.
func (t *Tournament) Pairings() []Pairing {
	return t.Snapshot().Pairings
}

// Phase returns the controller's current phase.
func (t *Tournament) Phase() Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state.Phase()
}
