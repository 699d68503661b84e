package projection

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is rendered for dates the formatter cannot interpret.
const InvalidDate = "Invalid Date"

// DateFormat renders a raw stored date value as display text.
type DateFormat interface {
	Format(raw any) string
}

var (
	shortDateTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Russian,
		language.Japanese,
		language.Chinese,
	}
	shortDateLayouts = []string{
		"1/2/2006",
		"02/01/2006",
		"2.1.2006",
		"02/01/2006",
		"2/1/2006",
		"02.01.2006",
		"2006/1/2",
		"2006/1/2",
	}
	shortDateMatcher = language.NewMatcher(shortDateTags)
)

// isoLayouts are tried in order; date-only values are interpreted as UTC midnight.
var isoLayouts = []struct {
	layout string
	local  bool
}{
	{"2006-01-02", false},
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01", false},
	{"2006", false},
}

// DateFormatter renders dates using the short layout of the closest supported locale.
type DateFormatter struct {
	tag    language.Tag
	layout string
	loc    *time.Location
}

// NewDateFormatter builds a formatter for a BCP 47 locale and IANA time zone.
func NewDateFormatter(locale, timezone string) (*DateFormatter, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}

	_, idx, _ := shortDateMatcher.Match(requested)
	return &DateFormatter{tag: shortDateTags[idx], layout: shortDateLayouts[idx], loc: loc}, nil
}

// Locale reports the matched locale.
func (f *DateFormatter) Locale() language.Tag {
	return f.tag
}

// Format renders ISO-8601 strings, epoch milliseconds and time values.
func (f *DateFormatter) Format(raw any) string {
	t, ok := f.parse(raw)
	if !ok {
		return InvalidDate
	}
	return t.In(f.loc).Format(f.layout)
}

func (f *DateFormatter) parse(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		return f.parseString(v)
	case json.Number:
		ms, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return fromMillis(ms)
	default:
		if ms, ok := numberField(raw); ok {
			return fromMillis(ms)
		}
		return time.Time{}, false
	}
}

func (f *DateFormatter) parseString(value string) (time.Time, bool) {
	for _, candidate := range isoLayouts {
		var (
			t   time.Time
			err error
		)
		if candidate.local {
			t, err = time.ParseInLocation(candidate.layout, value, f.loc)
		} else {
			t, err = time.Parse(candidate.layout, value)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromMillis(ms float64) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}
