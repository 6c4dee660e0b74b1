package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "empty",
			tag:  "",
			want: map[string]string{},
		},
		{
			name: "flags",
			tag:  "replace,skip",
			want: map[string]string{"replace": "", "skip": ""},
		},
		{
			name: "key value",
			tag:  "name=x, mode = deep",
			want: map[string]string{"name": "x", "mode": "deep"},
		},
		{
			name: "quoted value keeps commas",
			tag:  `desc="a, b ", flag`,
			want: map[string]string{"desc": "a, b ", "flag": ""},
		},
		{
			name:    "unterminated quote",
			tag:     `desc="abc`,
			wantErr: true,
		},
		{
			name:    "empty key",
			tag:     "=x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStructTag(tt.tag)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseStructTag(%q) mismatch (-want +got):\n%s", tt.tag, diff)
			}
		})
	}
}

func TestParseMergeTag(t *testing.T) {
	tests := []struct {
		tag     string
		skip    bool
		replace bool
		wantErr bool
	}{
		{tag: ``},
		{tag: `json:"name"`},
		{tag: `merge:"-"`, skip: true},
		{tag: `merge:"skip"`, skip: true},
		{tag: `merge:"replace" json:"mode"`, replace: true},
		{tag: `merge:"deep"`, wantErr: true},
		{tag: `merge:"skip,replace"`, wantErr: true},
	}

	for _, tt := range tests {
		skip, replace, err := ParseMergeTag(tt.tag)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMergeTag(%q): expected error", tt.tag)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMergeTag(%q): unexpected error: %v", tt.tag, err)
			continue
		}
		if skip != tt.skip || replace != tt.replace {
			t.Errorf("ParseMergeTag(%q) = %v, %v, want %v, %v", tt.tag, skip, replace, tt.skip, tt.replace)
		}
	}
}
