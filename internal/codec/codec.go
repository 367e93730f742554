// Package codec parses and serializes the inline annotations carried on a
// task line's trailing text: `key:: value` pairs, #tags, and free title
// text. Parsing and serialization are bidirectional: a line round-trips
// losslessly up to whitespace normalization and tag ordering, and
// write-back preserves the key spelling and wiki-bracket style already
// used in the source.
package codec

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sauerdaniel/taskledger/internal/task"
)

// Canonical field names. Localized synonyms map onto these via the alias
// table below; whichever spelling appears first in the source wins and is
// reused on write-back.
const (
	FieldProject = "project"
	FieldContext = "context"
	FieldPlanned = "planned"
	FieldDue     = "due"
	FieldReview  = "review"
)

// aliasField maps every recognized key spelling to its canonical field.
var aliasField = map[string]string{
	"project": FieldProject,
	"projekt": FieldProject,
	"context": FieldContext,
	"område":  FieldContext,
	"planned": FieldPlanned,
	"due":     FieldDue,
	"review":  FieldReview,
}

var (
	// keyToken matches a recognized `key::` token at a token boundary.
	// Unrecognized keys are deliberately not matched; they stay in the
	// surrounding text untouched.
	keyToken = regexp.MustCompile(`(?i)(^|[ \t])(project|projekt|context|område|planned|due|review)::`)

	// tagToken matches a #tag at a token boundary.
	tagToken = regexp.MustCompile(`(^|[ \t])(#[A-Za-z0-9_/-]+)`)

	// wikiRef matches a wiki-style bracketed reference inside a value.
	wikiRef = regexp.MustCompile(`\[\[(.*?)\]\]`)
)

// Parsed is the structured view of a task line's trailing text.
type Parsed struct {
	Title   string
	Project string
	Context string
	Planned task.DateValue
	Due     task.DateValue
	Review  task.DateValue
	Tags    []string

	// Source spelling choices, preserved for write-back.
	spelling    map[string]string // canonical field -> key spelling in source
	projectWiki bool              // project value used [[...]] form
	contextWiki bool              // context value used [[...]] form
}

// Update is a partial field update. A nil pointer leaves the current value
// in place; a pointer to the empty value clears the field. Completed is
// consumed by the mutation writer, not by Serialize.
type Update struct {
	Title     *string
	Completed *bool
	Project   *string
	Context   *string
	Planned   *string
	Due       *string
	Review    *string
	Tags      *[]string
}

// Parse recovers structured fields from the trailing text of a task line.
func Parse(raw string) Parsed {
	p := Parsed{spelling: make(map[string]string)}

	// Tags are extracted from the whole trailing text before annotation
	// splitting so that a tag following a date value does not pollute the
	// date, and a tag inside a wiki value does not pollute the name.
	text, tags := extractTags(raw)
	p.Tags = tags

	locs := keyToken.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		p.Title = collapse(text)
		return p
	}

	p.Title = collapse(text[:locs[0][0]])

	for i, loc := range locs {
		key := strings.ToLower(text[loc[4]:loc[5]])
		field := aliasField[key]

		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := strings.TrimSpace(text[loc[1]:end])

		// First occurrence wins, for spelling and value alike.
		if _, seen := p.spelling[field]; seen {
			continue
		}
		p.spelling[field] = key

		switch field {
		case FieldProject:
			p.Project, p.projectWiki = parseRef(value)
		case FieldContext:
			p.Context, p.contextWiki = parseRef(value)
		case FieldPlanned:
			p.Planned = parseDate(value)
		case FieldDue:
			p.Due = parseDate(value)
		case FieldReview:
			p.Review = parseDate(value)
		}
	}

	return p
}

// Serialize re-emits a task line's trailing text with the given update
// applied on top of the current source text. Fields omitted from the
// update keep their current value; explicitly empty fields are cleared.
// Annotations are emitted in fixed order, then tags, single-spaced.
func Serialize(currentRaw string, u Update) string {
	cur := Parse(currentRaw)

	title := cur.Title
	if u.Title != nil {
		title = collapse(*u.Title)
	}

	project := cur.Project
	if u.Project != nil {
		project = strings.TrimSpace(*u.Project)
	}
	context := cur.Context
	if u.Context != nil {
		context = strings.TrimSpace(*u.Context)
	}

	planned := dateOut(cur.Planned, u.Planned)
	due := dateOut(cur.Due, u.Due)
	review := dateOut(cur.Review, u.Review)

	tags := cur.Tags
	if u.Tags != nil {
		tags = NormalizeTags(*u.Tags)
	}

	parts := []string{title}
	if project != "" {
		parts = append(parts, cur.key(FieldProject)+":: "+refOut(project, cur.projectWiki))
	}
	if context != "" {
		parts = append(parts, cur.key(FieldContext)+":: "+refOut(context, cur.contextWiki))
	}
	if planned != "" {
		parts = append(parts, cur.key(FieldPlanned)+":: "+planned)
	}
	if due != "" {
		parts = append(parts, cur.key(FieldDue)+":: "+due)
	}
	if review != "" {
		parts = append(parts, cur.key(FieldReview)+":: "+review)
	}

	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)
	parts = append(parts, sorted...)

	return strings.TrimSpace(strings.Join(parts, " "))
}

// NormalizeTags lower-cases, prefixes, and deduplicates a tag list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || t == "#" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// key returns the spelling to use for a field on write-back: the spelling
// already present in the source, or the primary spelling when the field is
// being introduced.
func (p Parsed) key(field string) string {
	if k, ok := p.spelling[field]; ok {
		return k
	}
	return field
}

// extractTags removes #tag tokens from text and returns the remaining
// text plus the lower-cased, deduplicated tag set.
func extractTags(text string) (string, []string) {
	seen := make(map[string]bool)
	var tags []string
	out := tagToken.ReplaceAllStringFunc(text, func(m string) string {
		sub := tagToken.FindStringSubmatch(m)
		tag := strings.ToLower(sub[2])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
		return sub[1]
	})
	return out, tags
}

// parseRef extracts a project/context value, honoring the wiki-bracketed
// form. Reports whether the bracketed form was used.
func parseRef(value string) (string, bool) {
	if m := wikiRef.FindStringSubmatch(value); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(value), false
}

// parseDate normalizes a date-valued annotation: the first token is kept
// when canonical, otherwise the whole trimmed value is kept as opaque text.
func parseDate(value string) task.DateValue {
	if value == "" {
		return task.NoDate()
	}
	first := strings.Fields(value)[0]
	d := task.NewDate(first)
	if d.Comparable() {
		return d
	}
	return task.NewDate(value)
}

// dateOut resolves the serialized form of a date field under an update.
func dateOut(cur task.DateValue, upd *string) string {
	if upd != nil {
		return strings.TrimSpace(*upd)
	}
	if cur.IsSet() {
		return cur.Value
	}
	return ""
}

// refOut re-emits a project/context value in the style the source used.
func refOut(name string, wiki bool) string {
	if wiki {
		return "[[" + name + "]]"
	}
	return name
}

// collapse trims and squeezes runs of whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
