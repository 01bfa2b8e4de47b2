package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Converts a raw API value to its plain string form. Whole floats are written without decimals,
// since JSON numbers decode to float64 and "3" must not become "3.000000".
func stringify(value any) string {
	switch value := value.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case json.Number:
		return value.String()
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}

// Parses a raw API value as a finite number. Strings are trimmed before parsing.
func parseNumber(value any) (number float64, ok bool) {
	switch value := value.(type) {
	case float64:
		number = value
	case float32:
		number = float64(value)
	case int:
		number = float64(value)
	case int32:
		number = float64(value)
	case int64:
		number = float64(value)
	case uint8:
		number = float64(value)
	case uint32:
		number = float64(value)
	case uint64:
		number = float64(value)
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		number = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, false
		}
		number = parsed
	default:
		return 0, false
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func isWholeNumber(number float64) bool {
	return number == math.Trunc(number)
}

// Parses a raw API value as a finite number, the way chart values are plotted.
func ParseNumber(value any) (float64, bool) {
	return parseNumber(value)
}

// Parses a raw API value as a point in time: ISO timestamps and dates, or epoch milliseconds.
func ParseTime(value any) (time.Time, bool) {
	return parseTime(value)
}

// The raw API value as plain text, without locale formatting. Nil gives "".
func Text(value any) string {
	return stringify(value)
}
