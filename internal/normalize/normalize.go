// Package normalize canonicalizes user-supplied event fields before
// persistence: slug derivation from the title, calendar dates to YYYY-MM-DD,
// and clock times to 24-hour HH:MM.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevents/internal/domain"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
	slugHyphens  = regexp.MustCompile(`^-+|-+$`)

	strictTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)
	looseTime  = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?::\d{2})?(?:\s*(AM|PM))?$`)
)

// dateLayouts are tried in order by Date. Layouts without a zone parse in
// UTC, so date-only inputs come back unshifted.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"01/02/2006",
}

// Slug derives a URL-safe slug from a title: lowercase, trimmed, characters
// outside [word, whitespace, hyphen] stripped, runs of whitespace,
// underscores and hyphens collapsed to a single hyphen, leading and trailing
// hyphens removed. Deterministic; uniqueness is the storage layer's job.
func Slug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "")
}

// Date parses a loosely-formatted calendar date and returns its YYYY-MM-DD
// portion. Inputs carrying a zone are converted to UTC first.
func Date(s string) (string, error) {
	in := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, in)
		if err != nil {
			continue
		}
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", domain.NewValidationError("invalid date format")
}

// Time canonicalizes a clock time to zero-padded 24-hour HH:MM. A strict
// HH:MM input in range is returned as-is. Otherwise a looser
// H or HH : MM [: SS] [AM|PM] form is accepted: with a suffix the hour must
// be in [1,12] and is converted to 24-hour (12 AM -> 00, 12 PM -> 12);
// without one it must be in [0,23]. Minutes must be in [0,59].
func Time(s string) (string, error) {
	in := strings.TrimSpace(s)
	if strictTime.MatchString(in) {
		return in, nil
	}

	m := looseTime.FindStringSubmatch(in)
	if m == nil {
		return "", domain.NewValidationError("invalid time format")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	suffix := strings.ToUpper(m[3])

	if suffix != "" {
		if hour < 1 || hour > 12 {
			return "", domain.NewValidationError("invalid time format")
		}
	} else if hour > 23 {
		return "", domain.NewValidationError("invalid time format")
	}
	if minute > 59 {
		return "", domain.NewValidationError("invalid time format")
	}

	switch suffix {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// Changes flags which normalizable fields of an event were touched by the
// caller. Create paths set all three; update paths set only what changed.
type Changes struct {
	Title bool
	Date  bool
	Time  bool
}

// AllChanges is the change-set for a freshly created event.
var AllChanges = Changes{Title: true, Date: true, Time: true}

// Apply runs the pipeline over the flagged fields of event, in place.
// The slug is recomputed when the title changed or no slug exists yet, so an
// intentionally preserved slug survives unrelated updates.
func Apply(event *domain.Event, ch Changes) error {
	if ch.Title || event.Slug == "" {
		event.Slug = Slug(event.Title)
	}
	if ch.Date {
		d, err := Date(event.Date)
		if err != nil {
			return err
		}
		event.Date = d
	}
	if ch.Time {
		t, err := Time(event.Time)
		if err != nil {
			return err
		}
		event.Time = t
	}
	return nil
}
