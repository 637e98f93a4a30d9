package ascii

import (
	"testing"
)

func TestBox(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single line",
			lines: []string{"Hello"},
			want:  "┌───────┐\n│ Hello │\n└───────┘\n",
		},
		{
			name:  "multiple lines",
			lines: []string{"Line 1", "Longer line here", "Short"},
			want: "┌──────────────────┐\n" +
				"│ Line 1           │\n" +
				"│ Longer line here │\n" +
				"│ Short            │\n" +
				"└──────────────────┘\n",
		},
		{
			name:  "wide runes",
			lines: []string{"状态", "ok"},
			want: "┌──────┐\n" +
				"│ 状态 │\n" +
				"│ ok   │\n" +
				"└──────┘\n",
		},
		{
			name:  "empty",
			lines: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Box(tt.lines); got != tt.want {
				t.Errorf("Box() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncate me please", 10, "truncat..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"状态状态状态", 7, "状态..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.value, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight() = %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("PadRight() should not cut, got %q", got)
	}
}

func TestTable(t *testing.T) {
	got := Table(
		[]string{"#", "PATH", "CATEGORY"},
		[][]string{
			{"1", "AGENTS.md", "policy_governance"},
			{"2", "docs/a-very-long-file-name.md", "context_files"},
		},
		20,
	)
	want := "#  PATH                  CATEGORY\n" +
		"-  --------------------  -----------------\n" +
		"1  AGENTS.md             policy_governance\n" +
		"2  docs/a-very-long-...  context_files\n"
	if got != want {
		t.Errorf("Table() =\n%s\nwant\n%s", got, want)
	}
}
