/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import "errors"

// Errors returned by the pairing generator and the round controller. All of
// them leave the tournament state unchanged.
var (
	ErrInsufficientCompetitors = errors.New("at least 2 competitors are required to generate pairings")
	ErrTournamentComplete      = errors.New("tournament is complete")
	ErrInvalidTableReference   = errors.New("no such table or table already finished")
	ErrRoundNotReady           = errors.New("round has unfinished games")
	ErrUnresolvablePairing     = errors.New("no legal opponent left; arbiter intervention required")

	ErrPairingsExist       = errors.New("pairings already generated for this round")
	ErrInvalidResult       = errors.New("invalid result; want 1-0, 0-1 or 0.5-0.5")
	ErrDuplicateCompetitor = errors.New("competitor id already registered")
	ErrTournamentStarted   = errors.New("tournament has already started")
)
