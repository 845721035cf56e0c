package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"weekplanner/internal/models/task"
	"weekplanner/internal/planner"
)

// RenderWeek writes the seven day columns as a vertical list. The terminal
// is narrow, so days stack instead of sitting side by side.
func RenderWeek(w io.Writer, view *planner.WeekView, today time.Time) {
	today = task.DateOnly(today)

	fmt.Fprintf(w, "\n========== %s ==========\n", view.Title)
	for _, day := range view.Days {
		marker := ""
		if day.Date.Equal(today) {
			marker = "  <- today"
		}
		fmt.Fprintf(w, "\n%s%s\n", day.Date.Format("Monday, Jan 02"), marker)

		if len(day.Tasks) == 0 {
			fmt.Fprintln(w, "  (no tasks)")
			continue
		}
		for _, t := range day.Tasks {
			renderTask(w, t)
		}
	}
	fmt.Fprintln(w)
}

func renderTask(w io.Writer, t *task.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	line := fmt.Sprintf("  %s #%d", box, t.ID)
	if t.Time != "" {
		line += " " + t.Time
	}
	line += " " + t.Name
	if t.Location != "" {
		line += " @ " + t.Location
	}
	fmt.Fprintln(w, line)

	if t.Description != "" {
		for _, dl := range strings.Split(t.Description, "\n") {
			fmt.Fprintf(w, "      %s\n", dl)
		}
	}
	if t.AttachmentPath != "" {
		fmt.Fprintf(w, "      file: %s\n", filepath.Base(t.AttachmentPath))
	}
}
