/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/internal"
)

const (
	DefaultAPIBase = "https://beta.boylstonchess.org/api"
	DefaultWebBase = "https://boylstonchess.org"
)

// Client reads event registrations from the club's JSON API and, when the API
// is unavailable, from the public entries page.
type Client struct {
	HTTPClient *http.Client
	APIBase    string
	WebBase    string

	log zerolog.Logger
}

// NewClient returns a Client using httpClient, or http.DefaultClient when
// httpClient is nil.
func NewClient(httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTPClient: httpClient,
		APIBase:    DefaultAPIBase,
		WebBase:    DefaultWebBase,
		log:        log,
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (new): %w", url, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (do): %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unable to fetch %v (http): %v", url,
			resp.StatusCode)
	}

	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("unable to parse %v: %w", url, err)
	}
	return nil
}

// fetchDoc gets the HTML document at the given URL.
func (c *Client) fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}
