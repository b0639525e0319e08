// File: /models/types.go
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// DateOnly is a calendar date without a time-of-day component.
// Trips are keyed by day, so everything persists and compares at day granularity.
type DateOnly struct {
	time.Time
}

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a yyyy-mm-dd string into a DateOnly
func ParseDateOnly(value string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", value)
	}
	return DateOnly{t}, nil
}

// Value implements driver.Valuer interface for database storage
func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(dateOnlyLayout), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		*d = DateOnly{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = DateOnly{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseDateOnly(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

// GormDataType returns the data type for GORM
func (DateOnly) GormDataType() string {
	return "date"
}

// MarshalJSON implements json.Marshaler interface
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateOnlyLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
// Empty strings and nulls decode to the zero date; the monthly filter treats a
// zero date as belonging to no month at all.
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = DateOnly{}
		return nil
	}
	parsed, err := ParseDateOnly(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SameMonth reports whether the date falls in the given year and month
func (d DateOnly) SameMonth(year int, month time.Month) bool {
	return !d.IsZero() && d.Year() == year && d.Month() == month
}
