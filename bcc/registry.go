/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mikeb26/bcc-swiss/swiss"
)

var ErrNoEntries = errors.New("event has no entries")

// GetEntries returns the registrations for eventId. The API is preferred;
// the entries page is used when the API fails or reports no entries.
func (c *Client) GetEntries(ctx context.Context, eventId int64) ([]Entry,
	Source, error) {

	detail, apiErr := c.GetEventDetail(ctx, eventId)
	if apiErr == nil && len(detail.Entries) > 0 {
		return detail.Entries, SourceAPI, nil
	}
	if apiErr != nil {
		c.log.Warn().Err(apiErr).Int64("event", eventId).
			Msg("bcc.entries: api failed; trying website")
	}

	entries, webErr := c.getEntriesViaWeb(ctx, eventId)
	if webErr != nil {
		if apiErr != nil {
			return nil, SourceAPI, apiErr
		}
		return nil, SourceWebsite, webErr
	}
	if len(entries) == 0 {
		return nil, SourceWebsite, fmt.Errorf("event %d: %w", eventId,
			ErrNoEntries)
	}

	return entries, SourceWebsite, nil
}

// GetRegistrants returns eventId's entries as engine registrants. A
// non-empty section keeps only the entries of that section (compared
// case-insensitively); the website source has no sections and so is never
// filtered.
func (c *Client) GetRegistrants(ctx context.Context, eventId int64,
	section string) ([]swiss.Registrant, error) {

	entries, src, err := c.GetEntries(ctx, eventId)
	if err != nil {
		return nil, err
	}
	if section != "" && src == SourceWebsite {
		c.log.Warn().Int64("event", eventId).Str("section", section).
			Msg("bcc.registrants: website entries carry no sections; using all entries")
		section = ""
	}

	var regs []swiss.Registrant
	for _, e := range entries {
		if section != "" && !strings.EqualFold(e.SectionName, section) {
			continue
		}
		regs = append(regs, entryToRegistrant(e))
	}
	if len(regs) == 0 {
		return nil, fmt.Errorf("event %d section %q: %w", eventId, section,
			ErrNoEntries)
	}
	c.log.Info().Int64("event", eventId).Str("source", src.String()).
		Int("registrants", len(regs)).Msg("bcc.registrants: loaded")

	return regs, nil
}

// Sections returns the distinct section names among entries in display
// order.
func Sections(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.SectionName] {
			seen[e.SectionName] = true
			out = append(out, e.SectionName)
		}
	}
	sort.Sort(SectionSorter(out))
	return out
}
