package inventory

import (
	"cmp"
	"fmt"
	"strings"
)

// Field selects the record field a sort or search is keyed on.
type Field int

const (
	FieldName Field = iota
	FieldCategory
	FieldPriority
)

var fieldNames = [...]string{"name", "category", "priority"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Order returns the OrderState established by sorting on f.
func (f Field) Order() OrderState {
	switch f {
	case FieldName:
		return SortedByName
	case FieldCategory:
		return SortedByCategory
	case FieldPriority:
		return SortedByPriority
	default:
		return Unordered
	}
}

// Compare orders a and b on f: lexicographic for strings, numeric for priority.
func (f Field) Compare(a, b Record) int {
	switch f {
	case FieldCategory:
		return strings.Compare(a.Category, b.Category)
	case FieldPriority:
		return cmp.Compare(a.Priority, b.Priority)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

// ParseField accepts the lowercase field names used by scenarios and the CLI.
func ParseField(s string) (Field, error) {
	for i, name := range fieldNames {
		if strings.EqualFold(s, name) {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q: must be one of %v", s, fieldNames[:])
}

// OrderState records which key, if any, an ArrayStore is sorted by.
type OrderState int

const (
	Unordered OrderState = iota
	SortedByName
	SortedByCategory
	SortedByPriority
)

func (s OrderState) String() string {
	switch s {
	case Unordered:
		return "unordered"
	case SortedByName:
		return "sorted-by-name"
	case SortedByCategory:
		return "sorted-by-category"
	case SortedByPriority:
		return "sorted-by-priority"
	default:
		return fmt.Sprintf("OrderState(%d)", int(s))
	}
}

// Key is a search target for one field.
type Key struct {
	Field  Field
	Text   string // name or category
	Number int    // priority
}

// NameKey targets a record name. name is normalized like NewRecord input.
func NameKey(name string) Key { return Key{Field: FieldName, Text: normalizeName(name)} }

// CategoryKey targets a record category, normalized like NewRecord input.
func CategoryKey(category string) Key {
	return Key{Field: FieldCategory, Text: normalizeName(category)}
}

// PriorityKey targets a record priority.
func PriorityKey(priority int) Key { return Key{Field: FieldPriority, Number: priority} }

// compare is the three-way comparison of the key against r's field.
func (k Key) compare(r Record) int {
	switch k.Field {
	case FieldCategory:
		return strings.Compare(k.Text, r.Category)
	case FieldPriority:
		return cmp.Compare(k.Number, r.Priority)
	default:
		return strings.Compare(k.Text, r.Name)
	}
}

func (k Key) String() string {
	if k.Field == FieldPriority {
		return fmt.Sprintf("%s=%d", k.Field, k.Number)
	}
	return fmt.Sprintf("%s=%q", k.Field, k.Text)
}

// SearchResult is the outcome of a single search call.
// Index is -1 when Found is false, and always -1 for linked stores.
type SearchResult struct {
	Index       int
	Found       bool
	Comparisons int
}
