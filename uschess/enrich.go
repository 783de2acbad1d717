/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/bcc-swiss/swiss"
)

const defaultLookupLimit = 8

// EnrichRatings returns a copy of regs with ratings refreshed from the
// ratings API. Registrants are matched by UscfID, or by ID when it is
// numeric. Lookups run concurrently with at most limit in flight (a limit of
// 0 or less uses a default). A failed lookup, or an unrated result, keeps
// the registered rating; the returned count is the number of ratings that
// changed.
func (client *Client) EnrichRatings(ctx context.Context,
	regs []swiss.Registrant, system string,
	limit int) ([]swiss.Registrant, int, error) {

	if limit <= 0 {
		limit = defaultLookupLimit
	}
	out := make([]swiss.Registrant, len(regs))
	copy(out, regs)
	changed := make([]bool, len(regs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx := range out {
		memID, ok := RegistrantMemID(out[idx])
		if !ok {
			continue
		}
		g.Go(func() error {
			rating, err := client.FetchRating(gctx, memID, system)
			if err != nil {
				client.log.Warn().Err(err).Int("memid", int(memID)).
					Msg("uschess.enrich: lookup failed; using registered rating")
				return nil
			}
			if rating > 0 && rating != int(out[idx].Rating) {
				// each goroutine owns exactly one index
				out[idx].Rating = swiss.FlexRating(rating)
				changed[idx] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return regs, 0, err
	}
	if err := ctx.Err(); err != nil {
		return regs, 0, err
	}

	n := 0
	for _, c := range changed {
		if c {
			n++
		}
	}
	client.log.Info().Int("registrants", len(regs)).Int("updated", n).
		Msg("uschess.enrich: ratings refreshed")

	return out, n, nil
}

// RegistrantMemID returns the USCF member id of r, taken from UscfID or
// from a numeric ID.
func RegistrantMemID(r swiss.Registrant) (MemID, bool) {
	if r.UscfID > 0 {
		return MemID(r.UscfID), true
	}
	return parseMemID(r.ID)
}
