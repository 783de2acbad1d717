/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "bcc-swiss/0.1.0 (+https://github.com/mikeb26/bcc-swiss)"
	WebCacheBucket = "bopmatic-bcc-swiss-prod-webcache"
)
