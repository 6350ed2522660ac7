package allocator

import (
	"math"
	"sort"
	"time"

	"roster-scheduler/errors"
	"roster-scheduler/metrics"
	"roster-scheduler/models"
)

// Allocate distributes totalSlots among the given capacities using the
// largest-remainder method with a per-interviewer capacity ceiling.
//
// Each interviewer's ideal share is capacity/totalCapacity*totalSlots.
// Floors of the ideal shares form the baseline; the leftover slots are
// handed out one each in order of descending fractional remainder, ties
// broken by ascending ID, skipping anyone already at capacity. The walk
// is a single pass, so when totalSlots exceeds total capacity the
// unplaceable remainder is returned as a shortfall rather than an error.
//
// The result is deterministic for identical inputs regardless of map
// iteration order.
// Time: O(n log n) for the remainder sort.
func Allocate(capacities map[string]int, totalSlots int) (map[string]int, int, error) {
	if totalSlots <= 0 {
		return nil, 0, errors.ErrInvalidTarget
	}
	if len(capacities) == 0 {
		return nil, 0, errors.ErrNoEligibleInterviewers
	}

	totalCapacity := 0
	for _, c := range capacities {
		totalCapacity += c
	}
	if totalCapacity == 0 {
		return nil, 0, errors.ErrZeroCapacity
	}

	type share struct {
		id        string
		remainder float64
	}

	assigned := make(map[string]int, len(capacities))
	shares := make([]share, 0, len(capacities))
	leftover := totalSlots

	for id, capacity := range capacities {
		ideal := float64(capacity) / float64(totalCapacity) * float64(totalSlots)
		base := int(math.Floor(ideal))
		// When demand exceeds total capacity the ideal share can pass
		// the interviewer's own limit; clamp at the ceiling.
		if base > capacity {
			base = capacity
		}
		assigned[id] = base
		leftover -= base
		shares = append(shares, share{id: id, remainder: ideal - float64(base)})
	}

	// Descending remainder, ascending ID on ties. The explicit key
	// makes the tie-break independent of sort stability.
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].id < shares[j].id
	})

	for _, s := range shares {
		if leftover <= 0 {
			break
		}
		if assigned[s.id] < capacities[s.id] {
			assigned[s.id]++
			leftover--
		}
	}

	return assigned, leftover, nil
}

// Eligible filters the records down to those available for the shift,
// preserving load order.
func Eligible(interviewers []models.Interviewer, shift models.ShiftKind) []models.Interviewer {
	eligible := make([]models.Interviewer, 0, len(interviewers))
	for _, iv := range interviewers {
		if iv.AvailableFor(shift) {
			eligible = append(eligible, iv)
		}
	}
	return eligible
}

// Capacities extracts the per-ID capacity mapping for a shift, which is
// all Allocate ever sees; the allocator itself is shift-agnostic.
func Capacities(interviewers []models.Interviewer, shift models.ShiftKind) map[string]int {
	capacities := make(map[string]int, len(interviewers))
	for _, iv := range interviewers {
		capacities[iv.ID] = iv.SlotsFor(shift)
	}
	return capacities
}

// SlotTarget computes the conventional slot count for a shift: the
// shift window divided by the slot length, rounded down.
func SlotTarget(shift models.ShiftKind, slotMinutes int) (int, error) {
	if slotMinutes <= 0 {
		return 0, errors.ErrInvalidDuration
	}
	return shift.DurationMinutes() / slotMinutes, nil
}

// BuildRoster runs a full allocation for one shift: eligibility filter,
// target resolution, then Allocate. slotsOverride replaces the
// conventional target when positive.
//
// A shortfall (demand above total capacity) is recorded on the Roster,
// not returned as an error.
func BuildRoster(interviewers []models.Interviewer, shift models.ShiftKind, slotMinutes, slotsOverride int) (*models.Roster, error) {
	start := time.Now()
	metrics.ResetRunGauges()

	// The roster reports assigned minutes even when the target is
	// overridden, so the slot length must always be valid.
	if slotMinutes <= 0 {
		return nil, errors.ErrInvalidDuration
	}

	eligible := Eligible(interviewers, shift)
	if len(eligible) == 0 {
		return nil, errors.ErrNoEligibleInterviewers
	}

	target := slotsOverride
	if target <= 0 {
		var err error
		target, err = SlotTarget(shift, slotMinutes)
		if err != nil {
			return nil, err
		}
	}

	assignments, shortfall, err := Allocate(Capacities(eligible, shift), target)
	if err != nil {
		return nil, err
	}

	roster := &models.Roster{
		Shift:          shift,
		SlotMinutes:    slotMinutes,
		RequestedSlots: target,
		Assignments:    assignments,
		Interviewers:   eligible,
		Shortfall:      shortfall,
	}

	metrics.SlotsRequested.Set(float64(target))
	metrics.SlotsAssigned.Set(float64(roster.AssignedTotal()))
	metrics.SlotsShortfall.Set(float64(shortfall))
	metrics.InterviewersEligible.Set(float64(len(eligible)))
	metrics.CapacityAvailable.Set(float64(roster.TotalCapacity()))
	metrics.AllocationDurationSeconds.Observe(time.Since(start).Seconds())
	metrics.InterviewersPerRun.Observe(float64(len(eligible)))

	return roster, nil
}
