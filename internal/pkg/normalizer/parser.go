package normalizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateTimeParser is the lenient fallback used when no strict format matched
type DateTimeParser interface {
	Parse(value string, loc *time.Location) (time.Time, error)
}

type flexibleParser struct {
	// exact layouts are tried with time.ParseInLocation before jinzhu/now,
	// which fills zero clock fields from the current time for fractions it
	// does not recognise
	exact   []string
	formats []string
}

// NewFlexibleParser returns a parser accepting ISO-8601 and the common
// date layouts known to github.com/jinzhu/now. Missing date parts are taken
// from the current day.
func NewFlexibleParser(extraFormats ...string) DateTimeParser {
	exact := make([]string, 0, len(extraFormats)+3)
	exact = append(exact, extraFormats...)
	exact = append(exact, time.RFC3339Nano, microLayout, time.DateTime)

	formats := make([]string, 0, len(exact)+len(now.TimeFormats))
	formats = append(formats, exact...)
	formats = append(formats, now.TimeFormats...)
	return &flexibleParser{exact: exact, formats: formats}
}

func (p *flexibleParser) Parse(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range p.exact {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: loc,
		TimeFormats:  p.formats,
	}
	t, err := cfg.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparseable, value, err)
	}
	return t, nil
}
