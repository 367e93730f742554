// Package task defines the task entities extracted from checklist lines.
package task

import "regexp"

// canonicalDate matches the only date form usable in comparisons.
var canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateKind discriminates the three states a date-valued annotation can be in.
type DateKind int

const (
	// DateUnset means the annotation is absent from the source line.
	DateUnset DateKind = iota
	// DateCanonical means the value is in YYYY-MM-DD form and comparable.
	DateCanonical
	// DateOpaque means the value failed normalization. It is preserved
	// verbatim on round-trip but excluded from all date comparisons.
	DateOpaque
)

// DateValue is a tagged variant for an optional date field.
// Categorization rules branch on Kind, never on empty strings.
type DateValue struct {
	Kind  DateKind
	Value string
}

// NoDate returns the unset variant.
func NoDate() DateValue {
	return DateValue{Kind: DateUnset}
}

// NewDate classifies a raw annotation value. Empty input stays unset.
func NewDate(raw string) DateValue {
	if raw == "" {
		return DateValue{Kind: DateUnset}
	}
	if canonicalDate.MatchString(raw) {
		return DateValue{Kind: DateCanonical, Value: raw}
	}
	return DateValue{Kind: DateOpaque, Value: raw}
}

// IsSet reports whether the annotation is present at all.
func (d DateValue) IsSet() bool {
	return d.Kind != DateUnset
}

// Comparable reports whether the value can participate in date arithmetic.
func (d DateValue) Comparable() bool {
	return d.Kind == DateCanonical
}

// Canonical returns the YYYY-MM-DD value and whether it is comparable.
func (d DateValue) Canonical() (string, bool) {
	if d.Kind != DateCanonical {
		return "", false
	}
	return d.Value, true
}

// SubItemKind distinguishes nested checklist lines from plain notes.
type SubItemKind int

const (
	// SubItemNote is a bullet or freeform line grouped under a task.
	SubItemNote SubItemKind = iota
	// SubItemTask is a nested checklist line. It mirrors checklist syntax
	// but is never indexed as an independent Task.
	SubItemTask
)

// SubItem is a line grouped under a task by indentation.
type SubItem struct {
	Kind      SubItemKind
	Text      string
	Completed bool // only meaningful for SubItemTask
}

// Task is one checklist line, identified by (document id, 1-based line
// number at scan time). The identity is not stable across edits; the
// whole collection is re-derived on every scan pass.
type Task struct {
	Document  string
	Line      int
	Title     string
	Completed bool
	Project   string
	Context   string
	Planned   DateValue
	Due       DateValue
	Review    DateValue
	Tags      []string // lower-cased, deduplicated, each with leading '#'
	SubItems  []SubItem
}

// HasTag reports whether the task carries the given tag (case-insensitive
// match is unnecessary: tags are stored lower-cased at parse time).
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
