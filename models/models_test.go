package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roster-scheduler/models"
)

func TestParseShiftKind(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected models.ShiftKind
		wantErr  bool
	}{
		"Day":       {input: "day", expected: models.ShiftDay},
		"Night":     {input: "night", expected: models.ShiftNight},
		"MixedCase": {input: "Day", expected: models.ShiftDay},
		"Padded":    {input: " night ", expected: models.ShiftNight},
		"Unknown":   {input: "evening", wantErr: true},
		"Empty":     {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			shift, err := models.ParseShiftKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, shift)
		})
	}
}

func TestShiftKind_DurationMinutes(t *testing.T) {
	assert.Equal(t, 840, models.ShiftDay.DurationMinutes())
	assert.Equal(t, 600, models.ShiftNight.DurationMinutes())
}

func TestShiftKind_Title(t *testing.T) {
	assert.Equal(t, "Day", models.ShiftDay.Title())
	assert.Equal(t, "Night", models.ShiftNight.Title())
}

func TestInterviewer_ShiftAccessors(t *testing.T) {
	iv := models.Interviewer{
		ID:             "I1",
		Name:           "Ada",
		DayAvailable:   true,
		NightAvailable: false,
		DaySlots:       5,
		NightSlots:     2,
	}

	assert.True(t, iv.AvailableFor(models.ShiftDay))
	assert.False(t, iv.AvailableFor(models.ShiftNight))
	assert.Equal(t, 5, iv.SlotsFor(models.ShiftDay))
	assert.Equal(t, 2, iv.SlotsFor(models.ShiftNight))
}

func TestRoster_DerivedFigures(t *testing.T) {
	roster := &models.Roster{
		Shift:          models.ShiftDay,
		SlotMinutes:    40,
		RequestedSlots: 10,
		Assignments:    map[string]int{"I1": 6, "I2": 4, "I3": 0},
		Interviewers: []models.Interviewer{
			{ID: "I1", DayAvailable: true, DaySlots: 8},
			{ID: "I2", DayAvailable: true, DaySlots: 4},
			{ID: "I3", DayAvailable: true, DaySlots: 0},
		},
	}

	assert.Equal(t, 10, roster.AssignedTotal())
	assert.Equal(t, 12, roster.TotalCapacity())
	assert.Equal(t, 240, roster.AssignedMinutes("I1"))
	assert.InDelta(t, 75.0, roster.Utilization(roster.Interviewers[0]), 0.001)
	assert.InDelta(t, 100.0, roster.Utilization(roster.Interviewers[1]), 0.001)
	// Zero capacity reports 0%, not a division error.
	assert.Equal(t, 0.0, roster.Utilization(roster.Interviewers[2]))
}
