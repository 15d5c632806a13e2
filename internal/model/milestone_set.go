package model

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MilestoneSet is a set of milestone thresholds kept sorted ascending.
// Stored as a comma-joined string ("3,6,20"); the encoding exists only at
// the storage boundary, everything else works with the set.
type MilestoneSet []int

func (s MilestoneSet) Has(threshold int) bool {
	for _, t := range s {
		if t == threshold {
			return true
		}
	}
	return false
}

// Union returns a new set containing every element of s plus the given
// thresholds. The receiver is not modified.
func (s MilestoneSet) Union(thresholds ...int) MilestoneSet {
	out := make(MilestoneSet, len(s), len(s)+len(thresholds))
	copy(out, s)
	for _, t := range thresholds {
		if !out.Has(t) {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	return out
}

// Value implements driver.Valuer.
func (s MilestoneSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (s *MilestoneSet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("milestone set: unsupported column type %T", value)
	}
	if raw == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(MilestoneSet, 0, len(parts))
	for _, p := range parts {
		t, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("milestone set: parse %q: %w", p, err)
		}
		if !out.Has(t) {
			out = append(out, t)
		}
	}
	sort.Ints(out)
	*s = out
	return nil
}
