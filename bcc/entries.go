/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/bcc-swiss/internal"
	"github.com/mikeb26/bcc-swiss/swiss"
)

// getEntriesViaWeb scrapes the public entries page for eventId.
func (c *Client) getEntriesViaWeb(ctx context.Context,
	eventId int64) ([]Entry, error) {

	url := fmt.Sprintf("%v/tournament/entries/%d", c.WebBase, eventId)
	doc, err := c.fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries page: %w", err)
	}

	return parseEntries(doc), nil
}

// parseEntries extracts entries from the members table. The page carries
// no section names.
func parseEntries(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		name := internal.NormalizeName(strings.TrimSpace(cells.Eq(1).Text()))
		uscfID, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))

		e := Entry{
			PrimaryRating: strings.TrimSpace(cells.Eq(2).Text()),
			UscfID:        uscfID,
		}
		parts := strings.Fields(name)
		if len(parts) > 0 {
			e.FirstName = parts[0]
		}
		if len(parts) > 1 {
			e.LastName = parts[len(parts)-1]
		}
		entries = append(entries, e)
	})

	return entries
}

// entryToRegistrant converts a club entry into an engine registrant. The
// USCF id doubles as the competitor id; entries without one get an id
// assigned by the engine.
func entryToRegistrant(entry Entry) swiss.Registrant {
	r := swiss.Registrant{
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Rating:    swiss.FlexRating(swiss.ParseRating(entry.PrimaryRating)),
		UscfID:    entry.UscfID,
	}
	if entry.UscfID != 0 {
		r.ID = strconv.Itoa(entry.UscfID)
	}
	if entry.ChessTitle != "" {
		r.Name = fmt.Sprintf("%v %v %v", entry.ChessTitle, entry.FirstName,
			entry.LastName)
	}

	return r
}

// BuildEntriesOutput formats entries into grouped, aligned string output
func BuildEntriesOutput(entries []Entry) string {
	secEntries := make(map[string][]Entry)
	for _, e := range entries {
		secEntries[e.SectionName] = append(secEntries[e.SectionName], e)
	}
	var sectionNames []string
	for sec := range secEntries {
		sectionNames = append(sectionNames, sec)
	}
	sort.Sort(SectionSorter(sectionNames))
	var sb strings.Builder

	for _, sec := range sectionNames {
		type row struct {
			player, rating   string
			memid, ratingInt int
		}
		var rows []row
		for _, e := range secEntries[sec] {
			ratingInt := swiss.ParseRating(e.PrimaryRating)
			r := "unrated"
			if ratingInt != 0 {
				r = fmt.Sprintf("%v", ratingInt)
			}
			rows = append(rows, row{player: e.FirstName + " " + e.LastName,
				rating: r, memid: e.UscfID, ratingInt: ratingInt})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ratingInt > rows[j].ratingInt
		})

		maxP, maxR, maxM := len("Player"), len("Rating"), len("USCF memid")
		for _, r := range rows {
			if l := len(r.player); l > maxP {
				maxP = l
			}
			if l := len(r.rating); l > maxR {
				maxR = l
			}
			if l := len(fmt.Sprintf("%v", r.memid)); l > maxM {
				maxM = l
			}
		}

		if len(sectionNames) > 1 {
			if sec == "" {
				sec = "UNNAMED"
			}
			sb.WriteString(fmt.Sprintf("%s Section\n", sec))
		}
		sb.WriteString(strings.TrimRight(fmt.Sprintf("%-*s  %-*s  %-*s", maxP,
			"Player", maxR, "Rating", maxM, "USCF memid"), " ") + "\n")
		for _, r := range rows {
			sb.WriteString(strings.TrimRight(fmt.Sprintf("%-*s  %-*s  %-*v",
				maxP, r.player, maxR, r.rating, maxM, r.memid), " ") + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
