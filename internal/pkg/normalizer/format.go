package normalizer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// microLayout is RFC 3339 with a fixed six-digit fraction
const microLayout = "2006-01-02T15:04:05.000000-07:00"

var (
	leadingInt   = regexp.MustCompile(`^\s*[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// ParseError is a single strict-parse diagnostic
type ParseError struct {
	Position int
	Message  string
}

func (e ParseError) String() string {
	return fmt.Sprintf("at position %d: %s", e.Position, e.Message)
}

func parseFailureMessage(value, layout string, errs []ParseError) string {
	header := fmt.Sprintf("Parsing datetime string \"%s\" using format \"%s\" resulted in %d errors:", value, layout, len(errs))
	lines := lo.Map(errs, func(e ParseError, _ int) string { return e.String() })
	return header + "\n" + strings.Join(lines, "\n")
}

// formatTime renders t with a Go layout or one of the epoch pseudo-layouts
func formatTime(t time.Time, layout string) string {
	switch layout {
	case FormatUnix:
		return strconv.FormatInt(t.Unix(), 10)
	case FormatUnixMicro:
		micro := t.UnixMicro()
		sign := ""
		if micro < 0 {
			sign, micro = "-", -micro
		}
		return fmt.Sprintf("%s%d.%06d", sign, micro/1e6, micro%1e6)
	default:
		return t.Format(layout)
	}
}

// parseStrict parses value with exactly the given layout. Epoch timestamps
// carry their own instant; loc only sets the zone they are presented in.
func parseStrict(layout, value string, loc *time.Location) (time.Time, []ParseError) {
	switch layout {
	case FormatUnix:
		sec, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, []ParseError{{Position: 0, Message: "a unix timestamp was expected"}}
		}
		return time.Unix(sec, 0).In(loc), nil

	case FormatUnixMicro:
		return parseUnixMicro(value, loc)
	}

	t, err := time.ParseInLocation(layout, value, loc)
	if err == nil {
		return t, nil
	}

	var pe *time.ParseError
	if !errors.As(err, &pe) {
		return time.Time{}, []ParseError{{Position: 0, Message: err.Error()}}
	}
	return time.Time{}, []ParseError{{
		Position: len(pe.Value) - len(pe.ValueElem),
		Message:  parseErrorMessage(pe),
	}}
}

func parseUnixMicro(value string, loc *time.Location) (time.Time, []ParseError) {
	whole, frac, found := strings.Cut(value, ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return time.Time{}, []ParseError{{Position: 0, Message: "a unix timestamp was expected"}}
	}
	if !found {
		return time.Time{}, []ParseError{{Position: len(whole), Message: "the separation symbol could not be found"}}
	}
	if len(frac) == 0 || len(frac) > 6 || strings.Trim(frac, "0123456789") != "" {
		return time.Time{}, []ParseError{{Position: len(whole) + 1, Message: "a six digit microsecond could not be found"}}
	}

	micro, _ := strconv.ParseInt(frac+strings.Repeat("0", 6-len(frac)), 10, 64)
	nsec := micro * int64(time.Microsecond)
	if strings.HasPrefix(whole, "-") {
		nsec = -nsec
	}
	return time.Unix(sec, nsec).In(loc), nil
}

func parseErrorMessage(pe *time.ParseError) string {
	if pe.Message != "" {
		return strings.TrimPrefix(pe.Message, ": ")
	}
	if pe.ValueElem == "" {
		return fmt.Sprintf("unexpected end of data, expected %q", pe.LayoutElem)
	}
	return fmt.Sprintf("cannot parse %q as %q", pe.ValueElem, pe.LayoutElem)
}

// normalizeInstant drops the monotonic reading and anything below a microsecond
// by round-tripping through microLayout.
func normalizeInstant(t time.Time) time.Time {
	parsed, err := time.ParseInLocation(microLayout, t.Format(microLayout), t.Location())
	if err != nil {
		// years outside 0000-9999 do not fit the layout
		return t.Round(0).Truncate(time.Microsecond)
	}
	return parsed
}

// castInt reads the leading integer of s; no digits yields 0
func castInt(s string) int64 {
	m := leadingInt.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
	return n
}

// castFloat reads the leading decimal number of s; no digits yields 0
func castFloat(s string) float64 {
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(strings.TrimSpace(m), 64)
	return f
}
