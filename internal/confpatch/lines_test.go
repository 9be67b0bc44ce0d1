package confpatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPatchLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "replaces match",
			lines: []string{"timeout 5", "include themes/old/theme.conf", "scanfor manual"},
			want:  []string{"timeout 5", "include themes/new/theme.conf", "scanfor manual"},
		},
		{
			name:  "appends when absent",
			lines: []string{"timeout 5"},
			want:  []string{"timeout 5", "include themes/new/theme.conf"},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  []string{"include themes/new/theme.conf"},
		},
		{
			name:  "only first match",
			lines: []string{"include themes/a/theme.conf", "include themes/b/theme.conf"},
			want:  []string{"include themes/new/theme.conf", "include themes/b/theme.conf"},
		},
		{
			name:  "leading blanks",
			lines: []string{"  \tinclude themes/a/theme.conf"},
			want:  []string{"include themes/new/theme.conf"},
		},
		{
			name:  "commented line is not a match",
			lines: []string{"#include themes/a/theme.conf"},
			want:  []string{"#include themes/a/theme.conf", "include themes/new/theme.conf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PatchLines(tt.lines, "include themes/", "include themes/new/theme.conf")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PatchLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchLines_DoesNotModifyInput(t *testing.T) {
	lines := []string{"include themes/a/theme.conf"}
	_ = PatchLines(lines, "include themes/", "include themes/b/theme.conf")
	assert.Equal(t, "include themes/a/theme.conf", lines[0])
}

func TestPatchLines_Idempotent(t *testing.T) {
	lines := []string{"timeout 5", "include themes/a/theme.conf"}
	once := PatchLines(lines, "include themes/", "include themes/b/theme.conf")
	twice := PatchLines(once, "include themes/", "include themes/b/theme.conf")
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second patch changed lines (-once +twice):\n%s", diff)
	}
}

func TestRemoveLine(t *testing.T) {
	lines := []string{"banner themes/a/bg/1.png", "timeout 5", "banner themes/b/bg/2.png"}

	got := RemoveLine(lines, "banner themes/")

	if diff := cmp.Diff([]string{"timeout 5", "banner themes/b/bg/2.png"}, got); diff != "" {
		t.Errorf("RemoveLine() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, lines, 3)
	assert.Equal(t, []string{"timeout 5"}, RemoveLine([]string{"timeout 5"}, "banner themes/"))
}

func TestSplitJoinLines(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		lines []string
		eol   string
		out   string
	}{
		{"lf", "a\nb\n", []string{"a", "b"}, "\n", "a\nb\n"},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, "\r\n", "a\r\nb\r\n"},
		{"no trailing terminator", "a\nb", []string{"a", "b"}, "\n", "a\nb\n"},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}, "\n", "a\n\nb\n"},
		{"empty", "", nil, "\n", ""},
		{"mixed uses first ending", "a\r\nb\nc\r\n", []string{"a", "b", "c"}, "\r\n", "a\r\nb\r\nc\r\n"},
		{"mixed lf first", "a\nb\r\n", []string{"a", "b"}, "\n", "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, eol := splitLines([]byte(tt.in))
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.eol, eol)
			assert.Equal(t, tt.out, string(joinLines(lines, eol)))
		})
	}
}
