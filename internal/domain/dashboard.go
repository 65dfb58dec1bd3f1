package domain

import (
	"time"

	"github.com/portfolio/backend/internal/widget"
)

// Clock is the time widget payload
type Clock struct {
	Time     string    `json:"time"`
	Date     string    `json:"date"`
	Long     string    `json:"long_date"`
	Timezone string    `json:"timezone"`
	Now      time.Time `json:"now"`
}

// Calendar is the calendar widget payload
type Calendar struct {
	Label    string         `json:"label"`
	Weekdays []string       `json:"weekdays"`
	Today    int            `json:"today"`
	Grid     widget.Grid    `json:"grid"`
	Weeks    [][]widget.Day `json:"weeks"`
}

// Stat is one entry of the rotating stats widget
type Stat struct {
	Label      string `json:"label" yaml:"label"`
	Value      string `json:"value" yaml:"value"`
	Icon       string `json:"icon" yaml:"icon"`
	Gradient   string `json:"gradient" yaml:"gradient"`
	BgGradient string `json:"bg_gradient" yaml:"bg_gradient"`
}

// StatsSlide is a stat together with the carousel position it was read at
type StatsSlide struct {
	Stat       Stat         `json:"stat"`
	State      widget.State `json:"state"`
	IntervalMS int64        `json:"interval_ms"`
}

// DashboardData aggregates every home screen widget
type DashboardData struct {
	Clock     Clock      `json:"clock"`
	Calendar  Calendar   `json:"calendar"`
	Weather   Weather    `json:"weather"`
	Stats     StatsSlide `json:"stats"`
	Timestamp time.Time  `json:"timestamp"`
}
