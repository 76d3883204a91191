package validate

import (
	"fmt"
)

type StringRule struct {
	// Value to validate
	Value string
	// Name of the field in json.
	Name string

	// MinLength is the minimum allowed length of the string in bytes.
	MinLength int
	// MaxLength is the maximum allowed length of the string in bytes.
	MaxLength int

	// CharacterRanges is a list of character ranges. Every rune in value
	// must be within one of these ranges.
	CharacterRanges []CharRange
}

type CharRange struct {
	Low  rune
	High rune
}

var (
	AlphabetLower = CharRange{Low: 'a', High: 'z'}
	AlphabetUpper = CharRange{Low: 'A', High: 'Z'}
	Numbers       = CharRange{Low: '0', High: '9'}
	AlphaNumeric  = []CharRange{AlphabetLower, AlphabetUpper, Numbers}
)

func (s StringRule) Validate() *Failure {
	value := s.Value
	if value == "" {
		return nil
	}

	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	if s.MinLength > 0 && len(value) < s.MinLength {
		add("length of string is %d, must be at least %d", len(value), s.MinLength)
	}

	if s.MaxLength > 0 && len(value) > s.MaxLength {
		add("length of string is %d, must be no more than %d", len(value), s.MaxLength)
	}

	if len(s.CharacterRanges) > 0 {
		for i, c := range value {
			if !inRange(s.CharacterRanges, c) {
				add("character %q at position %v is not allowed", c, i)
				break
			}
		}
	}

	if len(problems) > 0 {
		return fail(s.Name, problems...)
	}
	return nil
}

func inRange(ranges []CharRange, c rune) bool {
	for _, r := range ranges {
		if c >= r.Low && c <= r.High {
			return true
		}
	}
	return false
}
