/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a score in half points, e.g. 2.5 -> "2½".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	if frac == 0 {
		return fmt.Sprintf("%v", int(whole))
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%v½", int(whole))
}

// NormalizeName title-cases a name and collapses it to "First Last".
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	title := func(w string) string {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	first := title(parts[0])
	last := title(parts[len(parts)-1])
	if len(parts) == 1 || first == last {
		return first
	}
	return first + " " + last
}
