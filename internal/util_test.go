/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
)

func TestScoreToString(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "½"},
		{1, "1"},
		{3.5, "3½"},
		{7, "7"},
	}
	for _, c := range cases {
		if got := ScoreToString(c.in); got != c.want {
			t.Errorf("ScoreToString(%v) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"MAGNUS", "Magnus"},
		{"hikaru  nakamura", "Hikaru Nakamura"},
		{"JOHN Q PUBLIC", "John Public"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestParseDateOrZero(t *testing.T) {
	for _, s := range []string{"", "null"} {
		got, err := ParseDateOrZero(s)
		if err != nil {
			t.Fatalf("ParseDateOrZero(%q) returned error: %v", s, err)
		}
		if !got.IsZero() {
			t.Errorf("ParseDateOrZero(%q) = %v; want zero", s, got)
		}
	}

	got, err := ParseDateOrZero("2025-06-14T10:30:00")
	if err != nil {
		t.Fatalf("ParseDateOrZero returned error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != 6 || got.Day() != 14 {
		t.Errorf("unexpected date %v", got)
	}
}
