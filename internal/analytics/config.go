package analytics

import "time"

// Config holds the product policy knobs of the pipeline.
type Config struct {
	Months      int          // trailing months in the completion trend
	TopN        int          // max entries in distribution and progress
	LabelMaxLen int          // project label length before truncation
	WeekStart   time.Weekday // first weekday of the activity series
	Palette     []string     // fallback chart fills by position
}

// DefaultWindow labels the summary cards when no window is configured.
const DefaultWindow = "this month"

// DefaultPalette is used when a project carries no color of its own.
var DefaultPalette = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#7AA2F7"}

// DefaultConfig returns the dashboard's standard policy.
func DefaultConfig() Config {
	return Config{
		Months:      6,
		TopN:        5,
		LabelMaxLen: 12,
		WeekStart:   time.Sunday,
		Palette:     DefaultPalette,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Months <= 0 {
		c.Months = d.Months
	}
	if c.TopN <= 0 {
		c.TopN = d.TopN
	}
	if c.LabelMaxLen <= 0 {
		c.LabelMaxLen = d.LabelMaxLen
	}
	if len(c.Palette) == 0 {
		c.Palette = d.Palette
	}
	return c
}

func (c Config) fill(i int, own string) string {
	if own != "" {
		return own
	}
	return c.Palette[i%len(c.Palette)]
}
