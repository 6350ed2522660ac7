package models

import (
	"fmt"
	"strings"
)

// ShiftKind identifies one of the two scheduling windows interviewers
// can sign up for.
type ShiftKind string

const (
	ShiftDay   ShiftKind = "day"
	ShiftNight ShiftKind = "night"
)

// Conventional shift lengths: Day runs 6am-8pm, Night runs 8pm-6am.
const (
	dayShiftMinutes   = 14 * 60
	nightShiftMinutes = 10 * 60
)

// ParseShiftKind converts a user-supplied shift name to a ShiftKind.
// Matching is case-insensitive.
func ParseShiftKind(s string) (ShiftKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return ShiftDay, nil
	case "night":
		return ShiftNight, nil
	default:
		return "", fmt.Errorf("unknown shift %q (must be day or night)", s)
	}
}

// DurationMinutes returns the length of the shift window in minutes.
func (s ShiftKind) DurationMinutes() int {
	if s == ShiftNight {
		return nightShiftMinutes
	}
	return dayShiftMinutes
}

func (s ShiftKind) String() string {
	return string(s)
}

// Title returns the shift name capitalized for display.
func (s ShiftKind) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Interviewer is one validated row from the roster CSV. Records are
// immutable once loaded; an allocation run never writes back to them.
type Interviewer struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	DayAvailable   bool   `json:"day_available"`
	NightAvailable bool   `json:"night_available"`
	DaySlots       int    `json:"day_slots" validate:"gte=0"`
	NightSlots     int    `json:"night_slots" validate:"gte=0"`
}

// AvailableFor reports whether the interviewer signed up for the shift.
func (iv Interviewer) AvailableFor(shift ShiftKind) bool {
	if shift == ShiftNight {
		return iv.NightAvailable
	}
	return iv.DayAvailable
}

// SlotsFor returns the interviewer's capacity for the shift.
func (iv Interviewer) SlotsFor(shift ShiftKind) int {
	if shift == ShiftNight {
		return iv.NightSlots
	}
	return iv.DaySlots
}

// Roster is the outcome of one allocation run: the slot assignment per
// eligible interviewer plus the parameters the run used, so reporters
// can derive figures without re-running the allocation.
type Roster struct {
	Shift          ShiftKind
	SlotMinutes    int
	RequestedSlots int
	// Assignments maps interviewer ID to assigned slot count. Every
	// entry satisfies 0 <= assigned <= capacity for the shift.
	Assignments map[string]int
	// Interviewers is the eligible set in load order.
	Interviewers []Interviewer
	// Shortfall is the number of requested slots that could not be
	// placed because total capacity ran out. Zero when demand was met.
	Shortfall int
}

// AssignedTotal sums the assigned slots across all interviewers.
func (r *Roster) AssignedTotal() int {
	total := 0
	for _, n := range r.Assignments {
		total += n
	}
	return total
}

// TotalCapacity sums the eligible interviewers' capacities for the
// roster's shift.
func (r *Roster) TotalCapacity() int {
	total := 0
	for _, iv := range r.Interviewers {
		total += iv.SlotsFor(r.Shift)
	}
	return total
}

// AssignedMinutes returns the interview minutes assigned to one
// interviewer.
func (r *Roster) AssignedMinutes(id string) int {
	return r.Assignments[id] * r.SlotMinutes
}

// Utilization returns the percentage of an interviewer's capacity that
// was assigned. Zero-capacity interviewers report 0%.
func (r *Roster) Utilization(iv Interviewer) float64 {
	capacity := iv.SlotsFor(r.Shift)
	if capacity == 0 {
		return 0
	}
	return float64(r.Assignments[iv.ID]) / float64(capacity) * 100
}
