package planbook

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/itinerary"
)

// Writer replaces itineraries and toggles items inside the monthly Markdown files.
type Writer struct {
	manager *files.Manager
}

// NewWriter wires the dependencies required to manipulate itinerary files.
func NewWriter(manager *files.Manager) *Writer {
	return &Writer{manager: manager}
}

// Replace stores plan as the itinerary for date. An existing section for the
// day is overwritten, which also clears its completion marks.
func (w *Writer) Replace(ctx context.Context, date time.Time, plan DayPlan) error {
	for i, item := range plan.Items {
		if err := item.Activity.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	path, lines, state, err := w.loadSection(ctx, date)
	if err != nil {
		return err
	}

	block := formatPlan(date, plan)
	if state == nil {
		if needsSeparation(lines) {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
		return files.WriteLines(path, lines)
	}

	tail := lines[state.end:]
	if len(tail) > 0 {
		block = append(block, "")
	}
	updated := make([]string, 0, state.start+len(block)+len(tail))
	updated = append(updated, lines[:state.start]...)
	updated = append(updated, block...)
	updated = append(updated, tail...)
	return files.WriteLines(path, updated)
}

// Toggle flips the done mark of the item at index (1-based). When planID is
// not empty it must match the stored itinerary, otherwise ErrStalePlan is returned.
func (w *Writer) Toggle(ctx context.Context, date time.Time, planID string, index int) (Item, error) {
	path, lines, state, err := w.loadSection(ctx, date)
	if err != nil {
		return Item{}, err
	}
	if state == nil {
		return Item{}, ErrPlanNotFound
	}
	if planID != "" && planID != state.plan.ID {
		return Item{}, ErrStalePlan
	}
	if index < 1 || index > len(state.itemIndexes) {
		return Item{}, ErrInvalidIndex
	}

	item := state.plan.Items[index-1]
	item.Done = !item.Done

	lines[state.itemIndexes[index-1]] = formatItem(item)
	if err := files.WriteLines(path, lines); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (w *Writer) loadSection(ctx context.Context, date time.Time) (string, []string, *sectionState, error) {
	if w == nil || w.manager == nil {
		return "", nil, nil, fmt.Errorf("writer not initialized with file manager")
	}

	path, err := w.manager.EnsureMonthFile(date)
	if err != nil {
		return "", nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, err
	}

	lines := splitLines(string(data))
	heading := dateHeading(date)

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = i
			break
		}
	}

	if start == -1 {
		return path, lines, nil, nil
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}

	state := &sectionState{
		plan: DayPlan{
			Date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		},
		start: start,
		end:   end,
	}
	for i := start + 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])
		if id, ok := parsePlanID(line); ok {
			state.plan.ID = id
			continue
		}
		if item, ok := parseItemLine(line); ok {
			state.itemIndexes = append(state.itemIndexes, i)
			state.plan.Items = append(state.plan.Items, item)
		}
	}

	return path, lines, state, nil
}

type sectionState struct {
	plan        DayPlan
	start       int
	end         int
	itemIndexes []int
}

func dateHeading(date time.Time) string {
	return "## " + date.Format(itinerary.DateLayout)
}

func formatPlan(date time.Time, plan DayPlan) []string {
	block := make([]string, 0, len(plan.Items)+2)
	block = append(block, dateHeading(date))
	if plan.ID != "" {
		block = append(block, fmt.Sprintf("<!-- plan: %s -->", plan.ID))
	}
	for _, item := range plan.Items {
		block = append(block, formatItem(item))
	}
	return block
}

func formatItem(item Item) string {
	mark := ' '
	if item.Done {
		mark = 'x'
	}
	a := item.Activity

	var builder strings.Builder
	builder.Grow(48 + len(a.Place) + len(a.Kind) + len(a.Location))
	fmt.Fprintf(&builder, "- [%c] [%s] %s%s%s%s%s", mark, a.Time, a.Place, fieldSeparator, a.Kind, fieldSeparator, a.Location)
	if a.Icon != "" {
		builder.WriteString(fieldSeparator)
		builder.WriteString(a.Icon)
	}
	if a.Category != "" {
		builder.WriteString(" #")
		builder.WriteString(string(a.Category))
	}
	return builder.String()
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	// Remove the trailing empty element produced by Split when the input ends with a newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func needsSeparation(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return strings.TrimSpace(lines[len(lines)-1]) != ""
}
