package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/widget"
)

// CalendarCmd prints the month grid for a date
type CalendarCmd struct {
	Date      string `short:"d" help:"Any day of the month to print (YYYY-MM-DD, default today)"`
	WeekStart string `name:"week-start" env:"WEEK_START" default:"sunday" enum:"sunday,monday" help:"First calendar column"`
}

func (c *CalendarCmd) Run() error {
	return c.print(os.Stdout, time.Now())
}

func (c *CalendarCmd) print(w io.Writer, today time.Time) error {
	ref := today
	if c.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", c.Date, today.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
		}
		ref = parsed
	}
	weekStart, err := widget.ParseWeekStart(c.WeekStart)
	if err != nil {
		return err
	}

	grid := widget.BuildMonthGridFrom(ref, weekStart)
	mark := 0
	if ref.Year() == today.Year() && ref.Month() == today.Month() {
		mark = widget.HighlightDay(grid, today)
	}

	title := fmt.Sprintf("%s %d", cases.Title(language.English).String(strings.ToLower(grid.Month.String())), grid.Year)
	fmt.Fprintf(w, "%*s\n", (7*4+len(title))/2, title)

	var header strings.Builder
	for _, label := range grid.WeekdayLabels() {
		fmt.Fprintf(&header, " %2s ", label)
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	// Four columns per day; today is bracketed.
	for _, week := range grid.Weeks() {
		var row strings.Builder
		for _, d := range week {
			switch {
			case d.Empty():
				row.WriteString("    ")
			case d.Number == mark:
				fmt.Fprintf(&row, "[%2d]", d.Number)
			default:
				fmt.Fprintf(&row, " %2d ", d.Number)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}
	return nil
}

// ClassifyCmd prints the condition and icon for WMO codes
type ClassifyCmd struct {
	Codes []int `arg:"" optional:"" help:"WMO weather codes (all known codes when omitted)"`
}

func (c *ClassifyCmd) Run() error {
	return c.print(os.Stdout)
}

func (c *ClassifyCmd) print(w io.Writer) error {
	codes := c.Codes
	if len(codes) == 0 {
		codes = widget.KnownCodes()
	}
	for _, code := range codes {
		cl := widget.Classify(code)
		fmt.Fprintf(w, "%3d  %-5s  %s\n", code, cl.Icon, cl.Condition)
	}
	return nil
}

// CarouselCmd prints successive positions of a carousel
type CarouselCmd struct {
	Items int `short:"n" default:"4" help:"Number of slides"`
	Steps int `short:"s" default:"8" help:"Number of advances to show"`
}

// Validate runs after parsing, before Run.
func (c *CarouselCmd) Validate() error {
	if c.Items < 1 {
		return fmt.Errorf("--items must be at least 1, got %d", c.Items)
	}
	if c.Steps < 0 {
		return fmt.Errorf("--steps must not be negative, got %d", c.Steps)
	}
	return nil
}

func (c *CarouselCmd) Run() error {
	return c.print(os.Stdout)
}

func (c *CarouselCmd) print(w io.Writer) error {
	start, err := widget.NewState(c.Items)
	if err != nil {
		return err
	}
	states, err := service.Cycle(start, c.Steps)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "start  %d/%d\n", start.CurrentIndex, start.ItemCount)
	for i, s := range states {
		fmt.Fprintf(w, "%5d  %d/%d\n", i+1, s.CurrentIndex, s.ItemCount)
	}
	return nil
}
