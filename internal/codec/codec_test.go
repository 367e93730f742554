package codec

import (
	"reflect"
	"testing"

	"github.com/sauerdaniel/taskledger/internal/task"
)

func strPtr(s string) *string { return &s }

func TestParseFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Parsed
	}{
		{
			name: "plain title",
			raw:  "Write the launch report",
			want: Parsed{Title: "Write the launch report"},
		},
		{
			name: "project and due",
			raw:  "Write report project:: Launch due:: 2024-06-01",
			want: Parsed{
				Title:   "Write report",
				Project: "Launch",
				Due:     task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
			},
		},
		{
			name: "localized spellings",
			raw:  "Ring kommunen projekt:: Bygget område:: Hemma",
			want: Parsed{Title: "Ring kommunen", Project: "Bygget", Context: "Hemma"},
		},
		{
			name: "wiki bracketed project",
			raw:  "Plan sprint project:: [[Q3 Roadmap]]",
			want: Parsed{Title: "Plan sprint", Project: "Q3 Roadmap"},
		},
		{
			name: "all date fields",
			raw:  "T planned:: 2024-06-08 due:: 2024-06-12 review:: 2024-06-01",
			want: Parsed{
				Title:   "T",
				Planned: task.DateValue{Kind: task.DateCanonical, Value: "2024-06-08"},
				Due:     task.DateValue{Kind: task.DateCanonical, Value: "2024-06-12"},
				Review:  task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
			},
		},
		{
			name: "opaque date preserved",
			raw:  "T due:: next friday",
			want: Parsed{
				Title: "T",
				Due:   task.DateValue{Kind: task.DateOpaque, Value: "next friday"},
			},
		},
		{
			name: "date keeps first canonical token only",
			raw:  "T due:: 2024-06-01 ish",
			want: Parsed{
				Title: "T",
				Due:   task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
			},
		},
		{
			name: "tags extracted lowercased deduped",
			raw:  "A #x #X #x",
			want: Parsed{Title: "A", Tags: []string{"#x"}},
		},
		{
			name: "tag after date annotation",
			raw:  "Write report due:: 2024-06-01 #urgent",
			want: Parsed{
				Title: "Write report",
				Due:   task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
				Tags:  []string{"#urgent"},
			},
		},
		{
			name: "unrecognized key stays in title",
			raw:  "A effort:: high",
			want: Parsed{Title: "A effort:: high"},
		},
		{
			name: "duplicate key first occurrence wins",
			raw:  "A due:: 2024-01-01 due:: 2024-02-02",
			want: Parsed{
				Title: "A",
				Due:   task.DateValue{Kind: task.DateCanonical, Value: "2024-01-01"},
			},
		},
		{
			name: "case insensitive keys",
			raw:  "A Due:: 2024-06-01 PROJECT:: X",
			want: Parsed{
				Title:   "A",
				Project: "X",
				Due:     task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
			},
		},
		{
			name: "whitespace collapsed in title",
			raw:  "A   spaced    out",
			want: Parsed{Title: "A spaced out"},
		},
		{
			name: "metadata only yields empty title",
			raw:  "due:: 2024-06-01",
			want: Parsed{
				Title: "",
				Due:   task.DateValue{Kind: task.DateCanonical, Value: "2024-06-01"},
			},
		},
		{
			name: "tags with slashes and hyphens",
			raw:  "A #work/deep #follow-up",
			want: Parsed{Title: "A", Tags: []string{"#work/deep", "#follow-up"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got.Title != tt.want.Title {
				t.Errorf("Title = %q, want %q", got.Title, tt.want.Title)
			}
			if got.Project != tt.want.Project {
				t.Errorf("Project = %q, want %q", got.Project, tt.want.Project)
			}
			if got.Context != tt.want.Context {
				t.Errorf("Context = %q, want %q", got.Context, tt.want.Context)
			}
			if got.Planned != tt.want.Planned {
				t.Errorf("Planned = %+v, want %+v", got.Planned, tt.want.Planned)
			}
			if got.Due != tt.want.Due {
				t.Errorf("Due = %+v, want %+v", got.Due, tt.want.Due)
			}
			if got.Review != tt.want.Review {
				t.Errorf("Review = %+v, want %+v", got.Review, tt.want.Review)
			}
			if !reflect.DeepEqual(got.Tags, tt.want.Tags) {
				t.Errorf("Tags = %v, want %v", got.Tags, tt.want.Tags)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	// With no update applied, serialization reproduces the source up to
	// whitespace normalization and tag ordering.
	lines := []string{
		"Write report project:: Launch due:: 2024-06-01 #urgent",
		"Ring kommunen projekt:: Bygget område:: Hemma",
		"Plan sprint project:: [[Q3 Roadmap]] planned:: 2024-06-08 due:: 2024-06-12",
		"T due:: next friday",
		"Just a title",
		"A #a #b",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			if got := Serialize(line, Update{}); got != line {
				t.Errorf("Serialize(%q) = %q, want unchanged", line, got)
			}
		})
	}
}

func TestSerializeUpdate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		u    Update
		want string
	}{
		{
			name: "set due keeps projekt spelling",
			raw:  "Ring kommunen projekt:: Bygget",
			u:    Update{Due: strPtr("2024-06-09")},
			want: "Ring kommunen projekt:: Bygget due:: 2024-06-09",
		},
		{
			name: "clear due",
			raw:  "A due:: 2024-06-01",
			u:    Update{Due: strPtr("")},
			want: "A",
		},
		{
			name: "introduce project uses primary spelling",
			raw:  "A",
			u:    Update{Project: strPtr("Launch")},
			want: "A project:: Launch",
		},
		{
			name: "wiki style preserved on value change",
			raw:  "A project:: [[Old]]",
			u:    Update{Project: strPtr("New")},
			want: "A project:: [[New]]",
		},
		{
			name: "replace title keeps annotations",
			raw:  "Old title due:: 2024-06-01 #x",
			u:    Update{Title: strPtr("New title")},
			want: "New title due:: 2024-06-01 #x",
		},
		{
			name: "replace tags sorted",
			raw:  "A #old",
			u:    Update{Tags: &[]string{"#z", "#a"}},
			want: "A #a #z",
		},
		{
			name: "fixed annotation order on rewrite",
			raw:  "A due:: 2024-06-02 project:: P planned:: 2024-06-01",
			u:    Update{Review: strPtr("2024-06-03")},
			want: "A project:: P planned:: 2024-06-01 due:: 2024-06-02 review:: 2024-06-03",
		},
		{
			name: "opaque date survives unrelated update",
			raw:  "A due:: someday project:: P",
			u:    Update{Context: strPtr("Home")},
			want: "A project:: P context:: Home due:: someday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Serialize(tt.raw, tt.u)
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeIdempotent(t *testing.T) {
	raw := "Write report projekt:: Bygget due:: 2024-06-01 #urgent"
	u := Update{Due: strPtr("2024-07-01")}

	once := Serialize(raw, u)
	twice := Serialize(once, u)
	if once != twice {
		t.Errorf("applying the same update twice diverged: %q vs %q", once, twice)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Work", "#Work", "x", "", "#"})
	want := []string{"#work", "#x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags() = %v, want %v", got, want)
	}
}
