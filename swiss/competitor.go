/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Color is the piece color a competitor was assigned in a round.
type Color string

const (
	ColorNone Color = ""
	White     Color = "w"
	Black     Color = "b"
)

// FlexRating accepts a rating encoded as either a JSON number or a JSON
// string. Strings such as "1850/24" keep only the part before the slash.
// Anything that cannot be parsed, and anything outside 1..MaxRating, is
// treated as unrated (0).
type FlexRating int

// MaxRating is the highest rating accepted from a registry.
const MaxRating = 4000

// normalizeRating truncates v to an integer rating, mapping anything that is
// not a plausible rating to 0.
func normalizeRating(v float64) int {
	if math.IsNaN(v) || v < 1 || v > MaxRating {
		return 0
	}
	return int(v)
}

// Int returns the normalized rating.
func (r FlexRating) Int() int {
	return normalizeRating(float64(r))
}

func (r *FlexRating) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*r = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("rating unmarshal: %w", err)
		}
		*r = FlexRating(ParseRating(str))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("rating unmarshal: %w", err)
	}
	*r = FlexRating(normalizeRating(f))

	return nil
}

// ParseRating normalizes a textual rating to an integer; 0 means unrated.
func ParseRating(rating string) int {
	r := 0
	if rating != "" {
		// handle formats like "559/24"
		if idx := strings.Index(rating, "/"); idx != -1 {
			rating = rating[:idx]
		}
		if v, err := strconv.Atoi(strings.TrimSpace(rating)); err == nil {
			r = normalizeRating(float64(v))
		}
	}

	return r
}

// Registrant is a raw registration record as supplied by a registry.
type Registrant struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Name      string     `json:"name,omitempty"`
	Rating    FlexRating `json:"rating"`
	UscfID    int        `json:"uscfId,omitempty"`
}

// DisplayName returns Name when set, otherwise "First Last".
func (r Registrant) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Competitor is a tournament participant together with its running score,
// pairing history and tiebreaks.
type Competitor struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	UscfID    int    `json:"uscfId,omitempty"`

	Points float64 `json:"points"`
	Games  int     `json:"games"`
	Wins   int     `json:"wins"`
	Byes   int     `json:"byes"`

	Opponents []string `json:"opponents"`
	Colors    []Color  `json:"colorHistory"`
	LastColor Color    `json:"lastColor"`

	Buchholz     float64 `json:"buchholz"`
	BuchholzCut1 float64 `json:"buchholzCut1"`
}

// PrepareCompetitors converts registrants into zero-score competitors.
// Registrants without an id are assigned a random one.
func PrepareCompetitors(registrants []Registrant) []Competitor {
	out := make([]Competitor, 0, len(registrants))
	for _, r := range registrants {
		out = append(out, newCompetitor(r))
	}

	return out
}

func newCompetitor(r Registrant) Competitor {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	return Competitor{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Name:      r.DisplayName(),
		Rating:    r.Rating.Int(),
		UscfID:    r.UscfID,
		Opponents: []string{},
		Colors:    []Color{},
	}
}

func (c *Competitor) hasPlayed(id string) bool {
	for _, opp := range c.Opponents {
		if opp == id {
			return true
		}
	}
	return false
}

func (c *Competitor) colorCount(want Color) int {
	n := 0
	for _, col := range c.Colors {
		if col == want {
			n++
		}
	}
	return n
}

func (c *Competitor) assign(opponent string, col Color) {
	c.Opponents = append(c.Opponents, opponent)
	c.Colors = append(c.Colors, col)
	c.LastColor = col
}

func (c *Competitor) awardBye() {
	c.Points += 1
	c.Games++
	c.Wins++
	c.Byes++
}

func (c Competitor) clone() Competitor {
	c.Opponents = append([]string{}, c.Opponents...)
	c.Colors = append([]Color{}, c.Colors...)
	return c
}

func cloneCompetitors(cs []Competitor) []Competitor {
	out := make([]Competitor, len(cs))
	for i, c := range cs {
		out[i] = c.clone()
	}
	return out
}

func indexByID(cs []Competitor) map[string]*Competitor {
	byID := make(map[string]*Competitor, len(cs))
	for i := range cs {
		byID[cs[i].ID] = &cs[i]
	}
	return byID
}
