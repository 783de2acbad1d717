/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

// Stats summarizes a tournament for dashboards.
type Stats struct {
	Competitors     int
	GamesPlayed     int
	DecisiveGames   int
	Draws           int
	ByesAwarded     int
	DrawRate        float64 // percent of played games
	CompletedGames  int     // current round
	OngoingGames    int     // current round
	NotStartedGames int     // current round
	AverageRating   float64 // unrated competitors count as 0
}

// GetStats computes Stats from a snapshot.
func GetStats(s State) Stats {
	st := Stats{Competitors: len(s.Competitors)}

	for _, rec := range s.Results {
		for _, g := range rec.Games {
			st.GamesPlayed++
			if g.Result == ResultDraw {
				st.Draws++
			} else {
				st.DecisiveGames++
			}
		}
		if rec.ByeID != "" {
			st.ByesAwarded++
		}
	}
	if s.ByeID != "" {
		st.ByesAwarded++
	}
	if st.GamesPlayed > 0 {
		st.DrawRate = float64(st.Draws) / float64(st.GamesPlayed) * 100
	}

	for _, p := range s.Pairings {
		switch p.Status {
		case StatusFinished:
			st.CompletedGames++
		case StatusOngoing:
			st.OngoingGames++
		default:
			st.NotStartedGames++
		}
	}

	if len(s.Competitors) > 0 {
		total := 0
		for _, c := range s.Competitors {
			total += c.Rating
		}
		st.AverageRating = float64(total) / float64(len(s.Competitors))
	}

	return st
}
