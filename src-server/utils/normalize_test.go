package utils_test

import (
	"regexp"
	"testing"

	"devents/src-server/utils"
)

func TestNormalizeDate(t *testing.T) {
	canonical := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	for input, expected := range map[string]string{
		"2025-11-14":        "2025-11-14",
		"11/14/2025":        "2025-11-14",
		"1/2/2026":          "2026-01-02",
		"2025/12/02":        "2025-12-02",
		"Nov 14, 2025":      "2025-11-14",
		"November 14, 2025": "2025-11-14",
		"14 Nov 2025":       "2025-11-14",
		"  2025-11-14  ":    "2025-11-14",
	} {
		got, ok := utils.NormalizeDate(input)
		if !ok {
			t.Error("NormalizeDate(", input, ") failed")
			continue
		}
		if got != expected {
			t.Error("NormalizeDate(", input, ") =", got, "expected", expected)
		}
		if !canonical.MatchString(got) {
			t.Error("non-canonical output", got)
		}
	}

	// case: natural-language input covering the whole string is accepted
	if got, ok := utils.NormalizeDate("tomorrow"); !ok || !canonical.MatchString(got) {
		t.Error("NormalizeDate( tomorrow ) =", got, ok)
	}

	// case: out-of-range numeric dates and partial matches are rejected, the
	// fallback parser must not fabricate a date from them
	for _, input := range []string{
		"not-a-real-date",
		"2025-13-40",
		"13/32/2025",
		"2025-11-14 garbage trailing",
		"",
	} {
		if got, ok := utils.NormalizeDate(input); ok {
			t.Error("NormalizeDate(", input, ") should fail, got", got)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	for input, expected := range map[string]string{
		"9:5":   "09:05",
		"9:05":  "09:05",
		"09:5":  "09:05",
		"09:00": "09:00",
		"0:0":   "00:00",
		"23:59": "23:59",
	} {
		got, ok := utils.NormalizeTime(input)
		if !ok {
			t.Error("NormalizeTime(", input, ") failed")
			continue
		}
		if got != expected {
			t.Error("NormalizeTime(", input, ") =", got, "expected", expected)
		}
	}

	for _, input := range []string{
		"24:00",
		"25:00",
		"12:60",
		"9 AM",
		"9",
		"9:",
		":30",
		"123:45",
		"",
	} {
		if _, ok := utils.NormalizeTime(input); ok {
			t.Error("NormalizeTime(", input, ") should fail")
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	// case: trimmed and lowercased
	got, ok := utils.NormalizeEmail(" TEST@EXAMPLE.COM ")
	if !ok || got != "test@example.com" {
		t.Error("unexpected result", got, ok)
	}

	for _, email := range []string{
		"user@example.com",
		"test.user@example.com",
		"user+tag@example.co.uk",
		"user_name@example-domain.com",
		"123@example.com",
		"user@mail.example.com",
	} {
		if _, ok := utils.NormalizeEmail(email); !ok {
			t.Error("NormalizeEmail(", email, ") should pass")
		}
	}

	for _, email := range []string{
		"invalidemail.com",
		"user@",
		"@example.com",
		"user @example.com",
		"user@example",
		"",
	} {
		if _, ok := utils.NormalizeEmail(email); ok {
			t.Error("NormalizeEmail(", email, ") should fail")
		}
	}
}
