/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"net/http"

	"github.com/rs/zerolog"
)

const DefaultAPIBase = "https://ratings-api.uschess.org/api/v1"

type Client struct {
	httpClient *http.Client
	APIBase    string

	log zerolog.Logger
}

// NewClient returns a ratings API client. Callers normally pass a caching
// client from internal/httpcache; a nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		APIBase:    DefaultAPIBase,
		log:        log,
	}
}
