package task

import "testing"

func TestNewDate(t *testing.T) {
	tests := []struct {
		raw  string
		kind DateKind
	}{
		{"", DateUnset},
		{"2024-06-01", DateCanonical},
		{"2024-6-1", DateOpaque},
		{"next friday", DateOpaque},
		{"2024-06-01 ish", DateOpaque},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d := NewDate(tt.raw)
			if d.Kind != tt.kind {
				t.Errorf("NewDate(%q).Kind = %v, want %v", tt.raw, d.Kind, tt.kind)
			}
			if tt.kind != DateUnset && d.Value != tt.raw {
				t.Errorf("Value = %q, want verbatim %q", d.Value, tt.raw)
			}
		})
	}
}

func TestDateValueAccessors(t *testing.T) {
	canonical := NewDate("2024-06-01")
	if !canonical.IsSet() || !canonical.Comparable() {
		t.Errorf("canonical date = %+v, want set and comparable", canonical)
	}
	if v, ok := canonical.Canonical(); !ok || v != "2024-06-01" {
		t.Errorf("Canonical() = %q, %v", v, ok)
	}

	opaque := NewDate("someday")
	if !opaque.IsSet() || opaque.Comparable() {
		t.Errorf("opaque date = %+v, want set but not comparable", opaque)
	}
	if _, ok := opaque.Canonical(); ok {
		t.Error("opaque Canonical() reported ok")
	}

	if NoDate().IsSet() {
		t.Error("NoDate() reported set")
	}
}

func TestHasTag(t *testing.T) {
	tk := Task{Tags: []string{"#urgent", "#work/deep"}}
	if !tk.HasTag("#urgent") || !tk.HasTag("#work/deep") {
		t.Error("stored tags not found")
	}
	if tk.HasTag("#other") {
		t.Error("absent tag reported present")
	}
}
