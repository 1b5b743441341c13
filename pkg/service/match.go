package service

import (
	"errors"
	"strings"
	"unicode"
)

// ErrNoMatchConfig is returned for remotes that set neither `match` nor `matchall`
var ErrNoMatchConfig = errors.New("`match` or `matchall` must be explicitly set on remotes")

func isSubString(sub string, full string) bool {
	return strings.Contains(strings.ToLower(full), strings.ToLower(sub))
}

// Iterate through the full string, when you match the "head" of the sub rune slice,
// pop it and continue through. If you clear sub, return true. Searches in O(n)
func isFuzzyMatch(sub []rune, full string) bool {
	if len(sub) == 0 {
		return true
	}
	for _, c := range full {
		if unicode.ToLower(c) == unicode.ToLower(sub[0]) {
			sub = sub[1:]
		}
		if len(sub) == 0 {
			return true
		}
	}
	return false
}

type MatchPattern int

const (
	FullMatchPattern MatchPattern = iota
	InverseMatchPattern
	FuzzyMatchPattern
	NoMatchPattern
)

// GetMatchPattern will return the MatchPattern of a given string, if any, plus the number
// of chars that can be omitted to leave only the relevant text
func GetMatchPattern(sub []rune) (MatchPattern, int) {
	if len(sub) == 0 {
		return NoMatchPattern, 0
	}
	switch sub[0] {
	case '~':
		return FuzzyMatchPattern, 1
	case '!':
		return InverseMatchPattern, 1
	}
	return FullMatchPattern, 0
}

func isMatch(sub []rune, full string, pattern MatchPattern) bool {
	if len(sub) == 0 {
		return true
	}
	switch pattern {
	case FullMatchPattern:
		return isSubString(string(sub), full)
	case InverseMatchPattern:
		return !isSubString(string(sub), full)
	case FuzzyMatchPattern:
		return isFuzzyMatch(sub, full)
	default:
		// Shouldn't reach here
		return false
	}
}

// remoteFilter decides which lists pulled from a remote are kept
type remoteFilter struct {
	Match    string
	MatchAll bool
}

func (f remoteFilter) validate() error {
	if f.Match == "" && !f.MatchAll {
		return ErrNoMatchConfig
	}
	return nil
}

func (f remoteFilter) keep(name string) bool {
	if f.MatchAll {
		return true
	}
	sub := []rune(f.Match)
	pattern, nChars := GetMatchPattern(sub)
	return isMatch(sub[nChars:], name, pattern)
}
