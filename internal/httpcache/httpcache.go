/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package httpcache

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/s3store"
)

// NewCachedHttpClient returns an http.Client that caches responses for
// maxAge. With a non-empty bucket the cache lives in S3; an empty bucket, or
// an S3 cache that fails to initialize, falls back to an in-memory cache.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration, log zerolog.Logger) *http.Client {

	var cache httpcache.Cache = httpcache.NewMemoryCache()
	if bucket != "" {
		s3c := s3store.New(ctx, bucket, true, log)
		if err := s3c.Init(); err != nil {
			log.Warn().Err(err).Str("bucket", bucket).
				Msg("httpcache: failed to init S3 cache; falling back to memory cache")
		} else {
			cache = s3c
		}
	}

	return NewClientWithCache(cache, maxAge, http.DefaultTransport)
}

// NewClientWithCache returns an http.Client caching through cache, with
// origin cache headers replaced so every response is kept for maxAge.
func NewClientWithCache(cache httpcache.Cache, maxAge time.Duration,
	base http.RoundTripper) *http.Client {

	hc := httpcache.NewTransport(cache)
	// we have to inject our own header overrides here in order to override
	// server responses that might indicate caching shouldn't be done
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: base,
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d",
				int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	// Underlying RoundTripper (e.g. default transport or another decorator)
	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
