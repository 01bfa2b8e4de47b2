// Package format maps raw API values to pt-BR display strings.
//
// Every function here is total: values that cannot be interpreted as the expected kind are
// returned in their plain string form instead of failing.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006, 15:04"
	timeLayout     = "15:04"

	// pt-BR puts a non-breaking space between the currency symbol and the amount.
	currencyPrefix = "R$\u00a0"
)

var weekdays = map[string]string{
	"0": "Domingo",
	"1": "Segunda",
	"2": "Terça",
	"3": "Quarta",
	"4": "Quinta",
	"5": "Sexta",
	"6": "Sábado",
}

// Formats as Brazilian Real, e.g. "R$ 1.234,50".
func Currency(value any) string {
	amount, ok := parseNumber(value)
	if !ok {
		return stringify(value)
	}

	if amount < 0 {
		return "-" + currencyPrefix + localeNumber(-amount, 2, 2)
	}
	return currencyPrefix + localeNumber(amount, 2, 2)
}

// Maps a day index 0-6 (Sunday first) to its Portuguese name.
func Weekday(value any) string {
	key := stringify(value)
	if name, ok := weekdays[key]; ok {
		return name
	}
	return key
}

// Formats a fractional number of minutes as "<minutes> min <seconds> s", truncating to whole
// seconds.
func TimeMinutes(value any) string {
	minutes, ok := parseNumber(value)
	if !ok {
		return stringify(value)
	}

	totalSeconds := math.Floor(minutes * 60)
	wholeMinutes := math.Floor(totalSeconds / 60)
	seconds := math.Mod(totalSeconds, 60)

	return fmt.Sprintf("%d min %d s", int64(wholeMinutes), int64(seconds))
}

// Abbreviates large numbers for chart axes: millions as "1.5M", thousands as "3K".
func AxisNumber(value any) string {
	n, ok := parseNumber(value)
	if !ok {
		return stringify(value)
	}

	switch {
	case n >= 1_000_000:
		return toFixed(n/1_000_000, 1) + "M"
	case n >= 1_000:
		return toFixed(n/1_000, 0) + "K"
	default:
		return localeNumber(n, 0, 3)
	}
}

// Axis label for durations in minutes, e.g. "12 min".
func AxisMinutes(value any) string {
	minutes, ok := parseNumber(value)
	if !ok {
		return stringify(value)
	}
	return localeNumber(minutes, 0, 0) + " min"
}

func Date(value any) string {
	timestamp, ok := parseTime(value)
	if !ok {
		return stringify(value)
	}
	return timestamp.Format(dateLayout)
}

func DateTime(value any) string {
	timestamp, ok := parseTime(value)
	if !ok {
		return stringify(value)
	}
	return timestamp.Format(dateTimeLayout)
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(:\d{2}(\.\d+)?)?$`)

// Formats a time of day as "HH:MM" in UTC. Whole numbers are treated as hours ("9" -> "09:00").
func Time(value any) string {
	if hour, ok := parseNumber(value); ok {
		if isWholeNumber(hour) && hour >= 0 && hour < 24 {
			return fmt.Sprintf("%02d:00", int64(hour))
		}
		return stringify(value)
	}

	if text, isString := value.(string); isString {
		if match := clockPattern.FindStringSubmatch(strings.TrimSpace(text)); match != nil {
			hour, _ := strconv.Atoi(match[1])
			return fmt.Sprintf("%02d:%s", hour, match[2])
		}
	}

	timestamp, ok := parseTime(value)
	if !ok {
		return stringify(value)
	}
	return timestamp.Format(timeLayout)
}

// Formats a number with pt-BR grouping and at most 2 decimals.
func GenericNumber(value any) string {
	n, ok := parseNumber(value)
	if !ok {
		return stringify(value)
	}
	return localeNumber(n, 0, 2)
}

// Formats with pt-BR separators, rounding half away from zero to maxFraction digits first.
func localeNumber(n float64, minFraction int, maxFraction int) string {
	rounded, _ := decimal.NewFromFloat(n).Round(int32(maxFraction)).Float64()
	return printer.Sprintf(
		"%v",
		number.Decimal(
			rounded,
			number.MinFractionDigits(minFraction),
			number.MaxFractionDigits(maxFraction),
		),
	)
}

// Fixed-point notation with a '.' separator, rounding half away from zero.
func toFixed(n float64, digits int32) string {
	return decimal.NewFromFloat(n).StringFixed(digits)
}

var timestampPattern = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`,
)

const localTimestampLayout = "2006-01-02T15:04:05.999999999"

// Parses an ISO timestamp string. Timestamps without a zone are read as UTC, so that dates are not
// shifted by the local time zone.
func parseTimestamp(text string) (time.Time, bool) {
	match := timestampPattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}

	if match[2] == "" {
		timestamp, err := time.ParseInLocation(localTimestampLayout, text, time.UTC)
		return timestamp, err == nil
	}

	timestamp, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, false
	}
	return timestamp.UTC(), true
}

// Accepts ISO timestamps, plain ISO dates (as UTC midnight) and epoch milliseconds.
func parseTime(value any) (time.Time, bool) {
	switch value := value.(type) {
	case time.Time:
		return value.UTC(), true
	case string:
		text := strings.TrimSpace(value)
		if timestamp, ok := parseTimestamp(text); ok {
			return timestamp, true
		}
		if date, err := time.ParseInLocation(time.DateOnly, text, time.UTC); err == nil {
			return date, true
		}
		return time.Time{}, false
	default:
		millis, ok := parseNumber(value)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(millis)).UTC(), true
	}
}

func isMidnight(timestamp time.Time) bool {
	return timestamp.Hour() == 0 &&
		timestamp.Minute() == 0 &&
		timestamp.Second() == 0 &&
		timestamp.Nanosecond() == 0
}

// Replaces underscores with spaces, for series names and table headers.
func Humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
