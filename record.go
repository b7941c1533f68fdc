package springs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"crosswarped.com/springs/pkg/primitives"
)

// DefaultUnfold is how many copies of a record make up its unfolded form.
const DefaultUnfold = 5

// ErrMalformedRecord is wrapped by every error returned while parsing records.
var ErrMalformedRecord = errors.New("malformed condition record")

// Record is one row of the condition report: the known state of each spring
// plus the sizes of each contiguous group of damaged springs, in order.
type Record struct {
	Cells  primitives.Cells
	Groups []int
}

// ParseRecord parses a line such as "???.### 1,1,3".
func ParseRecord(line string) (Record, error) {
	pattern, groupList, ok := strings.Cut(line, " ")
	if !ok {
		return Record{}, fmt.Errorf("%w: %q has no space between pattern and groups", ErrMalformedRecord, line)
	}

	cells, err := primitives.ParseCells(pattern)
	if err != nil {
		return Record{}, fmt.Errorf("%w: pattern %q: %w", ErrMalformedRecord, pattern, err)
	}

	tokens := strings.Split(groupList, ",")
	groups := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseUint(tok, 10, 31)
		if err != nil {
			return Record{}, fmt.Errorf("%w: group %q: %w", ErrMalformedRecord, tok, err)
		}
		if n == 0 {
			return Record{}, fmt.Errorf("%w: group sizes must be positive", ErrMalformedRecord)
		}
		groups = append(groups, int(n))
	}

	return Record{Cells: cells, Groups: groups}, nil
}

// ParseRecords reads one record per line. Blank lines are skipped; any other
// line that does not parse aborts the read.
func ParseRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

// Unfold returns the record repeated count times: the patterns joined by a
// single unknown spring and the groups concatenated. The receiver is left
// untouched.
func (r Record) Unfold(count int) Record {
	if count < 1 {
		count = 1
	}

	cells := make(primitives.Cells, 0, count*(len(r.Cells)+1)-1)
	groups := make([]int, 0, count*len(r.Groups))
	for i := range count {
		if i > 0 {
			cells = append(cells, primitives.Unknown)
		}
		cells = append(cells, r.Cells...)
		groups = append(groups, r.Groups...)
	}
	return Record{Cells: cells, Groups: groups}
}

// Repr renders the record in its input form.
func (r Record) Repr() string {
	groups := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = strconv.Itoa(g)
	}
	return r.Cells.String() + " " + strings.Join(groups, ",")
}

func (r Record) String() string {
	return r.Repr()
}

func (r Record) DebugString() string {
	return fmt.Sprintf("Record{cells: %d, groups: %v, unknown: %d, damaged: %d}",
		len(r.Cells), r.Groups, r.Cells.Count(primitives.Unknown), r.Cells.Count(primitives.Damaged))
}
