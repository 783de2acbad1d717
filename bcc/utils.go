/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"strconv"
	"strings"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	if s == SourceAPI {
		return "api"
	} else if s == SourceWebsite {
		return "website"
	} else {
		return "?"
	}
}

// SectionSorter implements sort.Interface for custom section ordering
// Order: "Open" first, then U<Number> sections descending by number, then
// others lexicographically
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	// "Open" or "Championship" always first
	if a == "Open" && b != "Open" {
		return true
	}
	if b == "Open" && a != "Open" {
		return false
	}
	if a == "Championship" && b != "Championship" {
		return true
	}
	if b == "Championship" && a != "Championship" {
		return false
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	if ua != ub {
		return ua
	}
	return a < b
}
