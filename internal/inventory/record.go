package inventory

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Field bounds, in runes. These match the fixed-width fields the menu layer
// collects (30 and 20 byte buffers including the terminator).
const (
	MaxNameLen     = 29
	MaxCategoryLen = 19
)

// Record is a single inventory entry. Priority doubles as quantity in the
// variants that track stock rather than build order.
//
// Records are plain values; replacing one means storing a new value.
type Record struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Priority int    `json:"priority" yaml:"priority"`
}

// NewRecord builds a Record from raw input.
//
// Leading and trailing whitespace is trimmed and both strings are NFC
// normalized before measuring. Over-length input is rejected with
// ErrCodeInputTooLong, never truncated.
func NewRecord(name, category string, priority int) (Record, error) {
	name = normalizeName(name)
	category = normalizeName(category)

	if name == "" {
		return Record{}, &Error{Code: ErrCodeInvalidRecord, Message: "name is required"}
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLen {
		return Record{}, &Error{
			Code:    ErrCodeInputTooLong,
			Message: fmt.Sprintf("name has %d characters, limit is %d", n, MaxNameLen),
			Target:  name,
		}
	}
	if n := utf8.RuneCountInString(category); n > MaxCategoryLen {
		return Record{}, &Error{
			Code:    ErrCodeInputTooLong,
			Message: fmt.Sprintf("category has %d characters, limit is %d", n, MaxCategoryLen),
			Target:  category,
		}
	}

	return Record{Name: name, Category: category, Priority: priority}, nil
}

// normalizeName is the canonical form of a name or category. Stored records
// and every lookup key go through it, so the input that created a record
// always finds it again.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// MustRecord is NewRecord for fixtures; it panics on invalid input.
func MustRecord(name, category string, priority int) Record {
	r, err := NewRecord(name, category, priority)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%s, %d)", r.Name, r.Category, r.Priority)
}
