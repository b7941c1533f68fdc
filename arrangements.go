package springs

import (
	"crosswarped.com/springs/internal"
	"crosswarped.com/springs/pkg/primitives"
)

// Arrangements returns the number of ways to resolve every unknown spring so
// that the damaged runs match the record's groups exactly.
func (r Record) Arrangements() int {
	return descend(r.Cells, r.Groups, false, internal.NewScatter())
}

// descend counts the completions of cells against groups. restrict is set
// when the cell just before cells[0] ended a damaged run, so a run may not
// start at cells[0].
//
// cells and groups are always views into the record's backing arrays.
func descend(cells primitives.Cells, groups []int, restrict bool, scatter *internal.Scatter) int {
	if len(groups) == 0 {
		if cells.Contains(primitives.Damaged) {
			return 0
		}
		return 1
	}

	if len(cells) == 0 {
		return 0
	}

	next := groups[0]
	if next > len(cells) {
		return 0
	}
	size := cells.RunLength()

	switch cells[0] {
	case primitives.Operational:
		return descend(cells[size:], groups, false, scatter)

	case primitives.Damaged:
		if restrict || size > next || cells[size:next].Contains(primitives.Operational) {
			return 0
		}
		return descend(cells[next:], groups[1:], true, scatter)
	}

	// The front is a run of size unknowns. Either all of them are operational,
	// or the first fit groups are packed into the run: groups 1..fit-1 lie
	// entirely inside it, and group fit either hangs tail cells off its right
	// edge or also lies entirely inside.
	count := descend(cells[size:], groups, false, scatter)

	available := size
	if restrict {
		available--
	}
	for fit := 1; fit <= len(groups); fit++ {
		last := groups[fit-1]

		// Group fit covers the last tail unknowns of the run and continues
		// into the cells after it.
		for tail := 1; tail <= last; tail++ {
			if tail > available {
				break
			}
			end := size + last - tail
			if end > len(cells) {
				continue
			}
			if cells[size:end].Contains(primitives.Operational) {
				continue
			}
			m := descend(cells[end:], groups[fit:], true, scatter)
			count += m * scatter.Count(available-tail, fit)
		}

		// Group fit ends inside the run with at least one operational cell
		// after it; the leftover unknowns are slack.
		if last+1 > available {
			break
		}
		available -= last + 1
		m := descend(cells[size:], groups[fit:], false, scatter)
		for gaps := 0; gaps <= available; gaps++ {
			count += m * scatter.Count(gaps, fit)
		}
	}
	return count
}
