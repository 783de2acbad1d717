/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mikeb26/bcc-swiss/internal"
)

type MemID int

// Player holds the rating information of a USCF member. A rating of 0 means
// unrated in that system.
type Player struct {
	MemberID    MemID
	Name        string
	RegRating   int
	QuickRating int
	BlitzRating int
}

// apiMemberResponse represents the JSON response from the member API endpoint
type apiMemberResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Ratings   []struct {
		Rating       int    `json:"rating"`
		RatingSystem string `json:"ratingSystem"`
	} `json:"ratings"`
}

// FetchPlayer retrieves player information for the given USCF member ID using
// the ratings API.
func (client *Client) FetchPlayer(ctx context.Context,
	memberID MemID) (*Player, error) {

	profileEndpoint := fmt.Sprintf("%v/members/%v", client.APIBase, memberID)
	req, err := http.NewRequestWithContext(ctx, "GET", profileEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating profile request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected profile status %d: %s", resp.StatusCode, string(body))
	}

	var memberData apiMemberResponse
	if err := json.NewDecoder(resp.Body).Decode(&memberData); err != nil {
		return nil, fmt.Errorf("decoding profile JSON: %w", err)
	}

	player := &Player{
		MemberID: memberID,
		Name:     internal.NormalizeName(memberData.FirstName + " " + memberData.LastName),
	}
	for _, rating := range memberData.Ratings {
		switch rating.RatingSystem {
		case "R":
			player.RegRating = rating.Rating
		case "Q":
			player.QuickRating = rating.Rating
		case "B":
			player.BlitzRating = rating.Rating
		}
	}

	return player, nil
}

// FetchRating returns the member's rating in the given system ("R", "Q" or
// "B"). An unknown system selects the regular rating.
func (client *Client) FetchRating(ctx context.Context, memberID MemID,
	system string) (int, error) {

	p, err := client.FetchPlayer(ctx, memberID)
	if err != nil {
		return 0, err
	}
	switch system {
	case "Q":
		return p.QuickRating, nil
	case "B":
		return p.BlitzRating, nil
	default:
		return p.RegRating, nil
	}
}

func parseMemID(s string) (MemID, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return MemID(v), true
}
