/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Result is the outcome of a single game in the "white-black" notation.
type Result string

const (
	ResultUnset    Result = ""
	ResultWhiteWin Result = "1-0"
	ResultBlackWin Result = "0-1"
	ResultDraw     Result = "0.5-0.5"
)

// Valid reports whether r is a recorded outcome.
func (r Result) Valid() bool {
	return r == ResultWhiteWin || r == ResultBlackWin || r == ResultDraw
}

// Status tracks a board from pairing through its result.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOngoing    Status = "ongoing"
	StatusFinished   Status = "finished"
)

// Pairing is a single board of a round. White and black refer to
// competitors by id.
type Pairing struct {
	Table   int    `json:"table"`
	WhiteID string `json:"whiteId"`
	BlackID string `json:"blackId"`
	Result  Result `json:"result"`
	Status  Status `json:"status"`
	// Repeat is set when no new opponent remained for white and the
	// generator fell back to a rematch.
	Repeat bool `json:"repeat,omitempty"`
}

// GameResult is a finished game as recorded in the round log.
type GameResult struct {
	WhiteID string `json:"whiteId"`
	BlackID string `json:"blackId"`
	Result  Result `json:"result"`
}

// RoundRecord is the result batch of one completed round.
type RoundRecord struct {
	Round int          `json:"round"`
	Games []GameResult `json:"games"`
	ByeID string       `json:"byeId,omitempty"`
}

// PairingResult is the output of one pairing generation.
type PairingResult struct {
	Pairings []Pairing
	// ByeID is the competitor awarded a bye this round, if any.
	ByeID string
	// Repeats counts pairings created by the rematch fallback.
	Repeats int
}

// Options tunes pairing generation and controller logging.
type Options struct {
	// Logger receives generation and transition events; nil disables logging.
	Logger *zerolog.Logger
	// StrictRepeats makes the generator fail with ErrUnresolvablePairing
	// instead of pairing a rematch.
	StrictRepeats bool
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// GeneratePairings pairs the competitors in cs for the given round using the
// default Options. See GeneratePairingsWithOptions.
func GeneratePairings(cs []Competitor, round int) (PairingResult, error) {
	return GeneratePairingsWithOptions(cs, round, Options{})
}

// GeneratePairingsWithOptions pairs the competitors in cs for the given round.
// On success the opponent and color histories of every paired competitor
// are extended and the bye recipient's score is credited; on error cs is
// left untouched.
func GeneratePairingsWithOptions(cs []Competitor, round int,
	opts Options) (PairingResult, error) {

	if len(cs) < 2 {
		return PairingResult{}, fmt.Errorf("%d competitor(s): %w", len(cs),
			ErrInsufficientCompetitors)
	}

	gen := &generator{
		work:  cloneCompetitors(cs),
		table: 1,
		log:   opts.logger(),
		opts:  opts,
	}

	var err error
	if round <= 1 {
		gen.firstRound()
	} else {
		err = gen.laterRound()
	}
	if err != nil {
		return PairingResult{}, err
	}
	copy(cs, gen.work)

	gen.log.Debug().
		Int("round", round).
		Int("tables", len(gen.result.Pairings)).
		Str("bye", gen.result.ByeID).
		Int("repeats", gen.result.Repeats).
		Msg("swiss.pair: generated pairings")

	return gen.result, nil
}

type generator struct {
	work   []Competitor
	table  int
	result PairingResult
	log    *zerolog.Logger
	opts   Options
}

func (g *generator) pair(white, black *Competitor, repeat bool) {
	g.result.Pairings = append(g.result.Pairings, Pairing{
		Table:   g.table,
		WhiteID: white.ID,
		BlackID: black.ID,
		Result:  ResultUnset,
		Status:  StatusNotStarted,
		Repeat:  repeat,
	})
	g.table++
	if repeat {
		g.result.Repeats++
	}

	white.assign(black.ID, White)
	black.assign(white.ID, Black)
}

func (g *generator) bye(c *Competitor) {
	c.awardBye()
	g.result.ByeID = c.ID
}

func byRatingDesc(list []*Competitor) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Rating > list[j].Rating
	})
}

// firstRound pairs the top half of the rating list against the bottom half:
// 1 vs half+1, 2 vs half+2 and so on, top half with white. For an odd field
// the last player of the top half is left without an opponent and scores a
// bye.
func (g *generator) firstRound() {
	sorted := make([]*Competitor, len(g.work))
	for i := range g.work {
		sorted[i] = &g.work[i]
	}
	byRatingDesc(sorted)

	n := len(sorted)
	half := (n + 1) / 2
	for i := 0; i < half && i+half < n; i++ {
		g.pair(sorted[i], sorted[i+half], false)
	}
	if n%2 == 1 {
		g.bye(sorted[half-1])
	}
}

// laterRound pairs within score groups first, highest group first, then pairs
// whoever is left across groups.
func (g *generator) laterRound() error {
	groups := make(map[float64][]*Competitor)
	var scores []float64
	for i := range g.work {
		c := &g.work[i]
		if _, ok := groups[c.Points]; !ok {
			scores = append(scores, c.Points)
		}
		groups[c.Points] = append(groups[c.Points], c)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	paired := make(map[string]bool)
	var pool []*Competitor
	for _, score := range scores {
		group := groups[score]
		byRatingDesc(group)

		for i := range group {
			if paired[group[i].ID] {
				continue
			}
			found := false
			for j := i + 1; j < len(group); j++ {
				if paired[group[j].ID] || group[i].hasPlayed(group[j].ID) {
					continue
				}
				white, black := assignColors(group[i], group[j])
				g.pair(white, black, false)
				paired[group[i].ID] = true
				paired[group[j].ID] = true
				found = true
				break
			}
			if !found {
				pool = append(pool, group[i])
			}
		}
	}

	for len(pool) >= 2 {
		white := pool[0]
		oppIdx := -1
		for k := 1; k < len(pool); k++ {
			if !white.hasPlayed(pool[k].ID) {
				oppIdx = k
				break
			}
		}
		repeat := false
		if oppIdx == -1 {
			if g.opts.StrictRepeats {
				return fmt.Errorf("competitor %s: %w", white.ID,
					ErrUnresolvablePairing)
			}
			oppIdx = 1
			repeat = true
			g.log.Warn().
				Str("white", white.ID).
				Str("black", pool[oppIdx].ID).
				Msg("swiss.pair: no new opponent left; pairing a rematch")
		}
		g.pair(white, pool[oppIdx], repeat)

		pool = append(pool[:oppIdx], pool[oppIdx+1:]...)
		pool = pool[1:]
	}
	if len(pool) == 1 {
		g.bye(pool[0])
	}

	return nil
}

// assignColors decides colors for two competitors from the same score group,
// first being the higher placed one. Two competitors who both had white last
// round are swapped so first gets black; otherwise first gets black only when
// it has had white more often than black.
func assignColors(first, second *Competitor) (*Competitor, *Competitor) {
	if first.LastColor == second.LastColor {
		if first.LastColor == White {
			return second, first
		}
	} else if first.colorCount(White) > first.colorCount(Black) {
		return second, first
	}

	return first, second
}
