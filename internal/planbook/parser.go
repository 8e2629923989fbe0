package planbook

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/faizmokh/jalan/internal/itinerary"
)

const fieldSeparator = " | "

// Parser incrementally reads Markdown itineraries and emits day plans as they are discovered.
type Parser struct {
	r        io.Reader
	scanner  *bufio.Scanner
	pending  *DayPlan
	initDone bool
}

// NewParser returns a parser ready to tokenize Markdown from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// NextPlan streams the next parsed DayPlan, returning io.EOF when done.
func (p *Parser) NextPlan() (*DayPlan, error) {
	if !p.initDone {
		if p.r == nil {
			return nil, io.EOF
		}
		p.scanner = bufio.NewScanner(p.r)
		p.initDone = true
	}

	plan := p.pending
	p.pending = nil

	if plan == nil {
		var err error
		plan, err = p.consumeUntilHeading()
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, io.EOF
		}
	}

	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if date, ok := parseHeading(line); ok {
			p.pending = &DayPlan{Date: date}
			return plan, nil
		}

		if id, ok := parsePlanID(line); ok {
			plan.ID = id
			continue
		}

		if item, ok := parseItemLine(line); ok {
			plan.Items = append(plan.Items, item)
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Parser) consumeUntilHeading() (*DayPlan, error) {
	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		if date, ok := parseHeading(line); ok {
			return &DayPlan{Date: date}, nil
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

var (
	itemPattern   = regexp.MustCompile(`^- \[( |x)\] \[([^\]]+)\] (.*)$`)
	planIDPattern = regexp.MustCompile(`^<!-- plan: (\S+) -->$`)
)

func parseItemLine(line string) (Item, bool) {
	matches := itemPattern.FindStringSubmatch(line)
	if matches == nil {
		return Item{}, false
	}

	body := matches[3]
	var category itinerary.Category
	if idx := strings.LastIndex(body, " #"); idx >= 0 {
		category = itinerary.Category(strings.TrimSpace(body[idx+2:]))
		body = body[:idx]
	}

	fields := strings.Split(body, fieldSeparator)
	if len(fields) < 3 || len(fields) > 4 {
		return Item{}, false
	}

	activity := itinerary.Activity{
		Place:    strings.TrimSpace(fields[0]),
		Time:     matches[2],
		Kind:     strings.TrimSpace(fields[1]),
		Location: strings.TrimSpace(fields[2]),
		Category: category,
	}
	if len(fields) == 4 {
		activity.Icon = strings.TrimSpace(fields[3])
	}

	return Item{Activity: activity, Done: matches[1] == "x"}, true
}

func parsePlanID(line string) (string, bool) {
	matches := planIDPattern.FindStringSubmatch(line)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}

func parseHeading(line string) (time.Time, bool) {
	if !strings.HasPrefix(line, "## ") {
		return time.Time{}, false
	}
	date, err := time.ParseInLocation(itinerary.DateLayout, strings.TrimSpace(line[3:]), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
