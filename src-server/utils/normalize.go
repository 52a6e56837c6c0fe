package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// dateLayouts are tried in order before falling back to the natural-language
// parser. Canonical form first so already-normalized values round-trip cheap.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

var dateParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// NormalizeDate coerces a date string to canonical YYYY-MM-DD form. The second
// return value is false when the input cannot be parsed as a calendar date.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	// the natural-language parser matches substrings; only a match covering
	// the whole input is a date, anything less is garbage
	if result, err := dateParser.Parse(raw, time.Now()); err == nil && result != nil &&
		result.Index == 0 && result.Text == raw {
		return result.Time.Format("2006-01-02"), true
	}
	return "", false
}

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)

// NormalizeTime coerces H:MM / HH:MM (24-hour) input to zero-padded HH:MM. The
// second return value is false for out-of-range values or any other shape.
func NormalizeTime(raw string) (string, bool) {
	match := timePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "", false
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 23 {
		return "", false
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an email address and checks it against a
// local@domain.tld shape. The second return value is false when the normalized
// address does not match.
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(email) {
		return email, false
	}
	return email, true
}
