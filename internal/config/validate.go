package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/sadopc/taskpulse/internal/calendar"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("user_id", c.UserID, notBlank),
		criterio.Run("database.path", c.Database.Path, notBlank),
		criterio.Run("database.name", c.Database.Name, notBlank),
		c.validateAnalytics(),
		c.validateSearch(),
		criterio.Run("logging.level", c.Logging.Level, logLevel),
	)
}

func (c *Config) validateAnalytics() error {
	var errs criterio.FieldErrorsBuilder
	a := c.Analytics

	if a.Months < 1 || a.Months > 36 {
		errs = errs.Append("analytics.months", fmt.Errorf("must be between 1 and 36, got %d", a.Months))
	}
	if a.TopN < 1 {
		errs = errs.Append("analytics.top_n", fmt.Errorf("must be at least 1, got %d", a.TopN))
	}
	if a.LabelMaxLen < 4 {
		errs = errs.Append("analytics.label_max_len", fmt.Errorf("must be at least 4, got %d", a.LabelMaxLen))
	}
	if _, ok := calendar.ParseWeekday(strings.ToLower(a.WeekStart)); !ok {
		errs = errs.Append("analytics.week_start", fmt.Errorf("unknown weekday %q", a.WeekStart))
	}
	for i, color := range a.Palette {
		if !hexColor.MatchString(color) {
			errs = errs.Append(fmt.Sprintf("analytics.palette[%d]", i), fmt.Errorf("invalid hex color %q", color))
		}
	}
	return errs.ToError()
}

func (c *Config) validateSearch() error {
	var errs criterio.FieldErrorsBuilder
	if c.Search.Delay <= 0 {
		errs = errs.Append("search.delay", fmt.Errorf("must be positive, got %s", c.Search.Delay))
	}
	if c.Search.Settle < 0 {
		errs = errs.Append("search.settle", fmt.Errorf("must not be negative, got %s", c.Search.Settle))
	}
	return errs.ToError()
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func logLevel(s string) error {
	if _, err := zerolog.ParseLevel(s); err != nil {
		return fmt.Errorf("unknown level %q", s)
	}
	return nil
}
