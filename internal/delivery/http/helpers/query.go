package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"eventboard/internal/domain"
)

// dateLayouts are the accepted formats for start_date and end_date query values.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseEventFilter reads the recognized event list query parameters (search,
// location, start_date, end_date, is_approved, ordering) into a domain.EventFilter.
// Malformed date or boolean values return an error; unrecognized ordering values
// are passed through and ignored downstream.
func ParseEventFilter(r *http.Request) (domain.EventFilter, error) {
	q := r.URL.Query()
	var filter domain.EventFilter

	if s := q.Get("search"); s != "" {
		filter.Search = &s
	}
	if s := q.Get("location"); s != "" {
		filter.Location = &s
	}
	if s := q.Get("start_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return domain.EventFilter{}, fmt.Errorf("invalid start_date %q", s)
		}
		filter.StartDate = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return domain.EventFilter{}, fmt.Errorf("invalid end_date %q", s)
		}
		filter.EndDate = &t
	}
	if s := q.Get("is_approved"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return domain.EventFilter{}, fmt.Errorf("invalid is_approved %q", s)
		}
		filter.IsApproved = &v
	}
	filter.Ordering = q.Get("ordering")

	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
