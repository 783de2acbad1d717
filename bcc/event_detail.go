/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mikeb26/bcc-swiss/internal"
)

// vended by https://beta.boylstonchess.org/api/event/<eventId>
// EventDetail represents detailed information about a specific event.
type EventDetail struct {
	EventID         int       `json:"eventId"`
	Title           string    `json:"title"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	DateDisplay     string    `json:"dateDisplay"`
	Sections        []string  `json:"sections"`
	SectionDisplay  string    `json:"sectionDisplay"`
	EventFormat     string    `json:"eventFormat"`
	TimeControl     string    `json:"timeControl"`
	RoundTimes      string    `json:"roundTimes"`
	EntryFeeSummary string    `json:"entryFeeSummary"`
	NumEntries      int       `json:"numEntries"`
	Entries         []Entry   `json:"entries"`
}

// Entry represents a single registration entry for an event.
type Entry struct {
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	UscfID            int       `json:"uscfId"`
	ChessTitle        string    `json:"chessTitle"`
	SectionName       string    `json:"sectionName"`
	RegistrationDate  time.Time `json:"registrationDate"`
	ByeRequests       string    `json:"byeRequests"`
	PrimaryRating     string    `json:"primaryRating"`
	PrimaryRatingType string    `json:"primaryRatingType"`
	SecondaryRating   string    `json:"secondaryRating"`
}

// GetEventDetail fetches detailed event info from the club API for a given
// eventId.
func (c *Client) GetEventDetail(ctx context.Context,
	eventId int64) (*EventDetail, error) {

	url := fmt.Sprintf("%v/event/%d", c.APIBase, eventId)
	var detail EventDetail
	if err := c.getJSON(ctx, url, &detail); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc event detail: %w", err)
	}

	return &detail, nil
}

// Custom unmarshaller for EventDetail to handle flexible date parsing.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		Entries   []Entry `json:"entries"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}
	var err error
	ed.StartDate, err = internal.ParseDateOrZero(aux.StartDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.StartDate: %w", err)
	}
	ed.EndDate, err = internal.ParseDateOrZero(aux.EndDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.EndDate: %w", err)
	}
	ed.Entries = aux.Entries
	return nil
}

// Custom unmarshaller for Entry to handle flexible date parsing.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Entry unmarshal: %w", err)
	}
	var err error
	e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate)
	if err != nil {
		return fmt.Errorf("parsing Entry.RegistrationDate: %w", err)
	}
	return nil
}

// BuildEventOutput formats an EventDetail into a short summary suitable for
// the top of a pairings sheet.
func BuildEventOutput(detail *EventDetail, boldTag string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%vTitle%v: %v\n", boldTag, boldTag,
		detail.Title))
	sb.WriteString(fmt.Sprintf("%vEventID%v: %d\n", boldTag, boldTag,
		detail.EventID))
	if detail.DateDisplay != "" {
		sb.WriteString(fmt.Sprintf("%vDate%v: %s\n", boldTag, boldTag,
			detail.DateDisplay))
	} else if !detail.StartDate.IsZero() {
		sb.WriteString(fmt.Sprintf("%vDate%v: %s\n", boldTag, boldTag,
			detail.StartDate.Format("Mon Jan 2, 2006")))
	}
	if detail.EventFormat != "" {
		sb.WriteString(fmt.Sprintf("%vFormat%v: %s\n", boldTag, boldTag,
			detail.EventFormat))
	}
	if detail.TimeControl != "" {
		sb.WriteString(fmt.Sprintf("%vTime Control%v: %s\n", boldTag, boldTag,
			detail.TimeControl))
	}
	if detail.SectionDisplay != "" {
		sb.WriteString(fmt.Sprintf("%vSections%v: %s\n", boldTag, boldTag,
			detail.SectionDisplay))
	}
	if detail.RoundTimes != "" {
		sb.WriteString(fmt.Sprintf("%vRound Times%v: %s\n", boldTag, boldTag,
			detail.RoundTimes))
	}
	sb.WriteString(fmt.Sprintf("%vEntries%v: %v\n", boldTag, boldTag,
		len(detail.Entries)))

	return sb.String()
}
