package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime is an input timestamp that also accepts a bare date or an ISO
// time without a zone. Zoneless values are read as UTC.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// DateError reports a date value no accepted layout could parse.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: use YYYY-MM-DD or an ISO 8601 timestamp", e.Value)
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &DateError{Value: string(b)}
	}
	for _, layout := range flexLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return &DateError{Value: s}
}

// Ptr returns the UTC time, or nil when t is nil.
func (t *FlexTime) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
