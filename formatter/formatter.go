package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"roster-scheduler/models"
)

// Report holds prepared roster data used by all formatters
type Report struct {
	Shift          string             `json:"shift"`
	SlotMinutes    int                `json:"slot_minutes"`
	RequestedSlots int                `json:"requested_slots"`
	AssignedSlots  int                `json:"assigned_slots"`
	TotalCapacity  int                `json:"total_capacity"`
	Shortfall      int                `json:"shortfall,omitempty"`
	Interviewers   []InterviewerEntry `json:"interviewers"`
}

// InterviewerEntry is one interviewer's line in the report
type InterviewerEntry struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	AssignedSlots   int     `json:"assigned_slots"`
	Capacity        int     `json:"capacity"`
	AssignedMinutes int     `json:"assigned_minutes"`
	Utilization     float64 `json:"utilization_percent"`
}

// prepareReport extracts and organizes roster data for formatting.
// Interviewers keep their load order.
func prepareReport(roster *models.Roster) *Report {
	entries := make([]InterviewerEntry, 0, len(roster.Interviewers))
	for _, iv := range roster.Interviewers {
		entries = append(entries, InterviewerEntry{
			ID:              iv.ID,
			Name:            iv.Name,
			Email:           iv.Email,
			AssignedSlots:   roster.Assignments[iv.ID],
			Capacity:        iv.SlotsFor(roster.Shift),
			AssignedMinutes: roster.AssignedMinutes(iv.ID),
			Utilization:     roster.Utilization(iv),
		})
	}

	return &Report{
		Shift:          roster.Shift.String(),
		SlotMinutes:    roster.SlotMinutes,
		RequestedSlots: roster.RequestedSlots,
		AssignedSlots:  roster.AssignedTotal(),
		TotalCapacity:  roster.TotalCapacity(),
		Shortfall:      roster.Shortfall,
		Interviewers:   entries,
	}
}

// FormatText returns the text representation of the roster
func FormatText(roster *models.Roster) string {
	report := prepareReport(roster)
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s Shift Roster Slot Assignment (1 slot = %d minutes):\n",
		roster.Shift.Title(), report.SlotMinutes))

	for _, entry := range report.Interviewers {
		sb.WriteString(fmt.Sprintf("%s (ID: %s) - Assigned Slots: %d out of %d available (%d min, %.1f%% utilization)\n",
			entry.Name, entry.ID, entry.AssignedSlots, entry.Capacity,
			entry.AssignedMinutes, entry.Utilization))
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %d of %d requested slots assigned (pool capacity: %d)\n",
		report.AssignedSlots, report.RequestedSlots, report.TotalCapacity))

	if report.Shortfall > 0 {
		sb.WriteString(fmt.Sprintf("  ⚠️  CAPACITY WARNING: Requested=%d, Assigned=%d, Shortfall=%d\n",
			report.RequestedSlots, report.AssignedSlots, report.Shortfall))
		sb.WriteString("  Every eligible interviewer is already at capacity.\n")
	}

	return sb.String()
}

// FormatJSON returns the JSON representation of the roster
func FormatJSON(roster *models.Roster) string {
	report := prepareReport(roster)
	jsonBytes, _ := json.MarshalIndent(report, "", "  ")
	return string(jsonBytes)
}

// FormatCSV returns the CSV representation of the roster
func FormatCSV(roster *models.Roster) string {
	report := prepareReport(roster)
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	writer.Write([]string{
		"Interviewer ID", "Name", "Email", "Assigned Slots", "Capacity",
		"Assigned Minutes", "Utilization %", "Capacity Warning",
	})

	warning := "No"
	if report.Shortfall > 0 {
		warning = "Yes"
	}

	for _, entry := range report.Interviewers {
		writer.Write([]string{
			entry.ID,
			entry.Name,
			entry.Email,
			fmt.Sprintf("%d", entry.AssignedSlots),
			fmt.Sprintf("%d", entry.Capacity),
			fmt.Sprintf("%d", entry.AssignedMinutes),
			fmt.Sprintf("%.1f", entry.Utilization),
			warning,
		})
	}

	writer.Flush()
	return sb.String()
}
