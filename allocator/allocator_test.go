package allocator_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"roster-scheduler/allocator"
	"roster-scheduler/errors"
	"roster-scheduler/models"
)

func TestAllocate(t *testing.T) {
	tests := map[string]struct {
		capacities map[string]int
		totalSlots int
		expected   map[string]int
		shortfall  int
	}{
		"ProportionalWithRemainders": {
			// Ideal shares 7.5, 3.75, 3.75 -> floors 7, 3, 3 with two
			// leftover slots; B and C carry the larger remainders.
			capacities: map[string]int{"A": 10, "B": 5, "C": 5},
			totalSlots: 15,
			expected:   map[string]int{"A": 7, "B": 4, "C": 4},
		},
		"ExactFit": {
			capacities: map[string]int{"A": 10, "B": 5, "C": 5},
			totalSlots: 20,
			expected:   map[string]int{"A": 10, "B": 5, "C": 5},
		},
		"SingleInterviewer": {
			capacities: map[string]int{"X": 10},
			totalSlots: 7,
			expected:   map[string]int{"X": 7},
		},
		"EvenSplit": {
			capacities: map[string]int{"A": 6, "B": 6},
			totalSlots: 6,
			expected:   map[string]int{"A": 3, "B": 3},
		},
		"ShortfallSaturatesAtCapacity": {
			capacities: map[string]int{"A": 1, "B": 1},
			totalSlots: 5,
			expected:   map[string]int{"A": 1, "B": 1},
			shortfall:  3,
		},
		"ZeroCapacityInterviewerGetsNothing": {
			capacities: map[string]int{"A": 0, "B": 8},
			totalSlots: 6,
			expected:   map[string]int{"A": 0, "B": 6},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assigned, shortfall, err := allocator.Allocate(tt.capacities, tt.totalSlots)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, assigned)
			assert.Equal(t, tt.shortfall, shortfall)
		})
	}
}

func TestAllocate_Errors(t *testing.T) {
	tests := map[string]struct {
		capacities map[string]int
		totalSlots int
		wantErr    error
	}{
		"ZeroTarget": {
			capacities: map[string]int{"A": 5},
			totalSlots: 0,
			wantErr:    errors.ErrInvalidTarget,
		},
		"NegativeTarget": {
			capacities: map[string]int{"A": 5},
			totalSlots: -3,
			wantErr:    errors.ErrInvalidTarget,
		},
		"EmptyPool": {
			capacities: map[string]int{},
			totalSlots: 10,
			wantErr:    errors.ErrNoEligibleInterviewers,
		},
		"AllZeroCapacity": {
			capacities: map[string]int{"A": 0, "B": 0},
			totalSlots: 10,
			wantErr:    errors.ErrZeroCapacity,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assigned, _, err := allocator.Allocate(tt.capacities, tt.totalSlots)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, assigned)
		})
	}
}

func TestAllocate_TieBreakByID(t *testing.T) {
	// Equal capacities tie on fractional remainder with one leftover
	// slot; the lexicographically smaller ID wins.
	assigned, shortfall, err := allocator.Allocate(map[string]int{"alice": 3, "bob": 3}, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0, shortfall)
	assert.Equal(t, map[string]int{"alice": 3, "bob": 2}, assigned)
}

func TestAllocate_ExactSumWhenFeasible(t *testing.T) {
	pools := []map[string]int{
		{"A": 10, "B": 5, "C": 5},
		{"A": 1, "B": 2, "C": 3, "D": 4},
		{"A": 7, "B": 7, "C": 7},
		{"A": 13, "B": 2},
	}

	for _, capacities := range pools {
		totalCapacity := 0
		for _, c := range capacities {
			totalCapacity += c
		}
		for target := 1; target <= totalCapacity; target++ {
			assigned, shortfall, err := allocator.Allocate(capacities, target)
			assert.NoError(t, err)
			assert.Equal(t, 0, shortfall)

			sum := 0
			for id, n := range assigned {
				sum += n
				assert.LessOrEqual(t, n, capacities[id],
					fmt.Sprintf("id %s over capacity at target %d", id, target))
				assert.GreaterOrEqual(t, n, 0)
			}
			assert.Equal(t, target, sum, fmt.Sprintf("sum mismatch at target %d", target))
		}
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	capacities := map[string]int{"A": 9, "B": 4, "C": 4, "D": 2, "E": 11}

	first, firstShortfall, err := allocator.Allocate(capacities, 17)
	assert.NoError(t, err)
	for i := 0; i < 20; i++ {
		next, nextShortfall, err := allocator.Allocate(capacities, 17)
		assert.NoError(t, err)
		assert.Equal(t, first, next)
		assert.Equal(t, firstShortfall, nextShortfall)
	}
}

func TestSlotTarget(t *testing.T) {
	tests := map[string]struct {
		shift       models.ShiftKind
		slotMinutes int
		expected    int
		wantErr     error
	}{
		"DayDefaultSlotLength":   {shift: models.ShiftDay, slotMinutes: 40, expected: 21},
		"NightDefaultSlotLength": {shift: models.ShiftNight, slotMinutes: 40, expected: 15},
		"DayHalfHourSlots":       {shift: models.ShiftDay, slotMinutes: 30, expected: 28},
		"ZeroDuration":           {shift: models.ShiftDay, slotMinutes: 0, wantErr: errors.ErrInvalidDuration},
		"NegativeDuration":       {shift: models.ShiftNight, slotMinutes: -10, wantErr: errors.ErrInvalidDuration},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			target, err := allocator.SlotTarget(tt.shift, tt.slotMinutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}
}

func TestEligible(t *testing.T) {
	interviewers := []models.Interviewer{
		{ID: "I1", Name: "Ada", DayAvailable: true, NightAvailable: false, DaySlots: 5},
		{ID: "I2", Name: "Ben", DayAvailable: false, NightAvailable: true, NightSlots: 4},
		{ID: "I3", Name: "Cruz", DayAvailable: true, NightAvailable: true, DaySlots: 3, NightSlots: 2},
	}

	day := allocator.Eligible(interviewers, models.ShiftDay)
	assert.Len(t, day, 2)
	assert.Equal(t, "I1", day[0].ID)
	assert.Equal(t, "I3", day[1].ID)

	night := allocator.Eligible(interviewers, models.ShiftNight)
	assert.Len(t, night, 2)
	assert.Equal(t, "I2", night[0].ID)

	assert.Equal(t, map[string]int{"I1": 5, "I3": 3}, allocator.Capacities(day, models.ShiftDay))
	assert.Equal(t, map[string]int{"I2": 4, "I3": 2}, allocator.Capacities(night, models.ShiftNight))
}

func TestBuildRoster(t *testing.T) {
	interviewers := []models.Interviewer{
		{ID: "I1", Name: "Ada", DayAvailable: true, DaySlots: 10},
		{ID: "I2", Name: "Ben", DayAvailable: true, DaySlots: 5},
		{ID: "I3", Name: "Cruz", DayAvailable: true, DaySlots: 5},
		{ID: "I4", Name: "Dee", NightAvailable: true, NightSlots: 8},
	}

	t.Run("ExplicitTarget", func(t *testing.T) {
		roster, err := allocator.BuildRoster(interviewers, models.ShiftDay, 40, 15)
		assert.NoError(t, err)
		assert.Equal(t, 15, roster.RequestedSlots)
		assert.Equal(t, map[string]int{"I1": 7, "I2": 4, "I3": 4}, roster.Assignments)
		assert.Equal(t, 0, roster.Shortfall)
		assert.Len(t, roster.Interviewers, 3)
	})

	t.Run("DerivedTarget", func(t *testing.T) {
		// Night shift at 40 minutes per slot derives 15 slots, but the
		// only night interviewer caps out at 8.
		roster, err := allocator.BuildRoster(interviewers, models.ShiftNight, 40, 0)
		assert.NoError(t, err)
		assert.Equal(t, 15, roster.RequestedSlots)
		assert.Equal(t, map[string]int{"I4": 8}, roster.Assignments)
		assert.Equal(t, 7, roster.Shortfall)
	})

	t.Run("NoEligibleInterviewers", func(t *testing.T) {
		dayOnly := []models.Interviewer{
			{ID: "I1", Name: "Ada", DayAvailable: true, DaySlots: 10},
		}
		roster, err := allocator.BuildRoster(dayOnly, models.ShiftNight, 40, 0)
		assert.ErrorIs(t, err, errors.ErrNoEligibleInterviewers)
		assert.Nil(t, roster)
	})

	t.Run("InvalidSlotDuration", func(t *testing.T) {
		roster, err := allocator.BuildRoster(interviewers, models.ShiftDay, 0, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidDuration)
		assert.Nil(t, roster)
	})

	t.Run("RosterCarriesRunParameters", func(t *testing.T) {
		roster, err := allocator.BuildRoster(interviewers, models.ShiftDay, 30, 0)
		assert.NoError(t, err)
		assert.Equal(t, models.ShiftDay, roster.Shift)
		assert.Equal(t, 30, roster.SlotMinutes)
		assert.Equal(t, 28, roster.RequestedSlots)
	})
}
