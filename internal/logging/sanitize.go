// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package logging

import "strings"

// MaxLoggedValueLength caps user-supplied values (filter params, paths) in log entries.
const MaxLoggedValueLength = 128

// SanitizeValue makes a client-controlled string safe to log: control
// characters become spaces and long values are truncated with "...".
func SanitizeValue(v string) string {
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, v)
	if len(v) > MaxLoggedValueLength {
		cut := MaxLoggedValueLength
		for cut > 0 && !isRuneStart(v[cut]) {
			cut--
		}
		v = v[:cut] + "..."
	}
	return v
}

// SanitizeValues applies SanitizeValue to each element and caps the list at 20 entries.
func SanitizeValues(values []string) []string {
	const maxValues = 20
	n := len(values)
	if n > maxValues {
		n = maxValues
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = SanitizeValue(values[i])
	}
	return out
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
