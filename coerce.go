package fiobank

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const dateLayout = "2006-01-02"

// coerceDate normalizes the date inputs the facade accepts: a civil.Date, a
// time.Time (truncated to its calendar date), or a string whose first ten
// bytes are YYYY-MM-DD, so ISO timestamps like "2016-10-23T00:00:00" pass.
func coerceDate(v any) (civil.Date, error) {
	switch d := v.(type) {
	case civil.Date:
		return d, nil
	case time.Time:
		return civil.DateOf(d), nil
	case string:
		return parseDatePrefix(d)
	default:
		return civil.Date{}, fmt.Errorf("coerceDate: unsupported date type %T", v)
	}
}

func parseDatePrefix(s string) (civil.Date, error) {
	if len(s) < len(dateLayout) {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
	}
	return civil.DateOf(t), nil
}

// sanitizeString trims textual raw values and reports an all-whitespace
// result as absent. The API serializes a few symbol fields as JSON numbers,
// so plain numbers are formatted rather than rejected.
func sanitizeString(v any) (*string, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, nil
		}
		return &trimmed, nil
	case float64:
		formatted := strconv.FormatFloat(s, 'f', -1, 64)
		return &formatted, nil
	default:
		return nil, fmt.Errorf("value %v has type %T, want string", v, v)
	}
}

func sanitizeFloat(v any) (*float64, error) {
	switch f := v.(type) {
	case nil:
		return nil, nil
	case float64:
		value := f
		return &value, nil
	case string:
		trimmed := strings.TrimSpace(f)
		if trimmed == "" {
			return nil, nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a number", f)
		}
		return &value, nil
	default:
		return nil, fmt.Errorf("value %v has type %T, want number", v, v)
	}
}

func sanitizeDate(v any) (*civil.Date, error) {
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, nil
		}
		date, err := parseDatePrefix(trimmed)
		if err != nil {
			return nil, err
		}
		return &date, nil
	default:
		return nil, fmt.Errorf("value %v has type %T, want date string", v, v)
	}
}
