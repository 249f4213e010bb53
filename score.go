package zealdoc

import (
	"bytes"
	"strings"
)

// Fuzzy matcher cutoffs. A needle character preceded by more than
// MaxMismatchGroups runs of unmatched haystack characters, or found more
// than MaxMatchDistance characters after the previous match, does not match.
const (
	MaxMismatchGroups = 3
	MaxMatchDistance  = 8
)

// ScoreFunctionName is the name the scorer is registered under in a docset
// index connection.
const ScoreFunctionName = "zealScore"

const dot = '.'

// Score rates how well needle matches the symbol name haystack. It returns
// 0 when there is no match, otherwise a positive score where higher is
// better. Exact substring matches score in 1..100, looser fuzzy matches in
// 1..99 depending on where they sit in the name.
//
// Matching is ASCII case-insensitive. Namespace separators in the haystack
// ("::", "/", "_" and " ") are treated as dots.
func Score(needle, haystack string) int {
	n := []byte(lowerASCII(needle))
	h := normalizeHaystack(haystack)

	start, length := matchFuzzy(n, h)
	if start == -1 {
		return 0
	}

	if length == len(n) {
		return scoreExact(start, length, h)
	}

	best := scoreFuzzy(start, length, h)

	// Prefer a match inside the trailing identifier over one spread across
	// its qualifying namespace.
	if i := bytes.LastIndexByte(h, dot); i != -1 {
		tail := h[i+1:]
		if start, length := matchFuzzy(n, tail); start != -1 {
			best = max(best, scoreFuzzy(start, length, tail))
		}
	}
	return best
}

// matchFuzzy finds needle as a subsequence of haystack and returns the index
// of the first matched byte and the length of the span up to the last
// matched byte. start is -1 when there is no match.
func matchFuzzy(needle, haystack []byte) (start, length int) {
	start = -1
	groups := 0
	j := 0

	for i := 0; i < len(needle); i++ {
		found := false
		first := true
		distance := 0

		for j < len(haystack) {
			c := haystack[j]
			j++

			if needle[i] == c {
				if start == -1 {
					start = j - 1
				}
				length = j - start
				found = true
				break
			}

			if first {
				groups++
				if groups > MaxMismatchGroups {
					break
				}
				first = false
			}

			if i != 0 {
				distance++
				if distance > MaxMatchDistance {
					break
				}
			}
		}

		if !found {
			return -1, 0
		}
	}
	return start, length
}

func scoreExact(matchIndex, matchLen int, value []byte) int {
	valueLen := len(value)

	// One point off for each unmatched character.
	score := 100 - (valueLen - matchLen)

	if matchIndex > 0 {
		switch {
		case value[matchIndex-1] == dot:
			// Same as a match at the start of the string, minus one.
			score += matchIndex - 1
		case matchLen == 1:
			// Single characters only match at the start or after a dot.
			return 0
		default:
			// Unmatched characters back to the nearest dot, and those after the match.
			i := matchIndex - 2
			for i >= 0 && value[i] != dot {
				i--
			}
			score -= (matchIndex - i) + (valueLen - matchLen - matchIndex)
		}

		// One point off for each dot before the match, except the adjacent one.
		separators := 0
		for i := matchIndex - 2; i >= 0; i-- {
			if value[i] == dot {
				separators++
			}
		}
		score -= separators
	}

	// Five points off for each dot after the match.
	separators := 0
	for i := matchIndex + matchLen; i < valueLen; i++ {
		if value[i] == dot {
			separators++
		}
	}
	score -= separators * 5

	return max(1, score)
}

func scoreFuzzy(matchIndex, matchLen int, value []byte) int {
	switch {
	case matchIndex == 0 || value[matchIndex-1] == dot:
		return max(66, 100-matchLen)
	case matchIndex+matchLen == len(value):
		return max(33, 67-matchLen)
	default:
		return max(1, 34-matchLen)
	}
}

func normalizeHaystack(s string) []byte {
	s = strings.ReplaceAll(s, "::", ".")
	b := []byte(lowerASCII(s))
	for i, c := range b {
		switch c {
		case '/', '_', ' ':
			b[i] = dot
		}
	}
	return b
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
