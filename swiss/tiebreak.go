/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// ComputeTiebreaks returns c's Buchholz (sum of its opponents' current
// points) and Buchholz Cut-1 (Buchholz less the lowest opponent score).
// Opponent scores are looked up at call time; unknown ids count as 0. The
// cut only applies once c has met at least two opponents, so with zero or
// one opponent Cut-1 equals Buchholz.
func ComputeTiebreaks(c *Competitor, byID map[string]*Competitor) (float64, float64) {
	var buchholz float64
	minScore := 0.0
	for idx, id := range c.Opponents {
		pts := 0.0
		if opp, ok := byID[id]; ok {
			pts = opp.Points
		}
		buchholz += pts
		if idx == 0 || pts < minScore {
			minScore = pts
		}
	}
	if len(c.Opponents) < 2 {
		return buchholz, buchholz
	}

	return buchholz, buchholz - minScore
}

// ApplyTiebreaks recomputes the tiebreak fields of every competitor in cs.
func ApplyTiebreaks(cs []Competitor) {
	byID := indexByID(cs)
	for i := range cs {
		cs[i].Buchholz, cs[i].BuchholzCut1 = ComputeTiebreaks(&cs[i], byID)
	}
}
