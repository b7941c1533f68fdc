package springs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"crosswarped.com/springs/pkg/primitives"
)

func mustParse(t testing.TB, line string) Record {
	t.Helper()
	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord(%q) error = %v", line, err)
	}
	return rec
}

func TestParseRecord(t *testing.T) {
	got := mustParse(t, "?#. 1,12")
	want := Record{
		Cells:  primitives.Cells{primitives.Unknown, primitives.Damaged, primitives.Operational},
		Groups: []int{1, 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRecord() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no separator", "???.###"},
		{"unknown character", "??x 1,1"},
		{"non numeric group", "??? 1,a"},
		{"negative group", "??? -1"},
		{"empty group", "??? 1,,2"},
		{"no groups", "??? "},
		{"zero group", "??? 0"},
		{"trailing zero group", "#. 1,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			if err == nil {
				t.Fatalf("ParseRecord(%q) expected an error", tt.line)
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("ParseRecord(%q) error = %v, want it to wrap ErrMalformedRecord", tt.line, err)
			}
		})
	}
}

func TestParseRecords(t *testing.T) {
	input := "???.### 1,1,3\r\n\n.??..??...?##. 1,1,3\n"
	records, err := ParseRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRecords() error = %v", err)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.Repr())
	}
	want := []string{"???.### 1,1,3", ".??..??...?##. 1,1,3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseRecords() mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseRecords(strings.NewReader("???.### 1,1,3\n??? x\n"))
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("ParseRecords() error = %v, want ErrMalformedRecord", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected the error to name line 2, got %v", err)
	}
}

func TestRecord_Repr(t *testing.T) {
	for _, line := range strings.Split(exampleInput, "\n") {
		if got := mustParse(t, line).String(); got != line {
			t.Errorf("String() = %q, want %q", got, line)
		}
	}
}

func TestRecord_Unfold(t *testing.T) {
	rec := mustParse(t, ".# 1")

	tests := []struct {
		count int
		want  string
	}{
		{1, ".# 1"},
		{0, ".# 1"},
		{2, ".#?.# 1,1"},
		{5, ".#?.#?.#?.#?.# 1,1,1,1,1"},
	}

	for _, tt := range tests {
		got := rec.Unfold(tt.count).Repr()
		if got != tt.want {
			t.Errorf("Unfold(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}

	if rec.Repr() != ".# 1" {
		t.Errorf("Expected Unfold to leave the record untouched, got %q", rec.Repr())
	}
}

func TestRecord_DebugString(t *testing.T) {
	got := mustParse(t, "?#.? 2,1").DebugString()
	want := "Record{cells: 4, groups: [2 1], unknown: 2, damaged: 1}"
	if got != want {
		t.Errorf("DebugString() = %q, want %q", got, want)
	}
}

func TestRecord_UnfoldDoesNotAlias(t *testing.T) {
	rec := mustParse(t, "?# 2")
	unfolded := rec.Unfold(1)
	unfolded.Cells[0] = primitives.Operational
	unfolded.Groups[0] = 9

	if rec.Repr() != "?# 2" {
		t.Errorf("Expected the base record to be unchanged, got %q", rec.Repr())
	}
}
