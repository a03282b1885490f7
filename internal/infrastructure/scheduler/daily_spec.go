package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dailySpec is a once-a-day schedule parsed from the config's five-field
// form "MINUTE HOUR * * *". Only daily schedules are supported; the day,
// month and weekday fields must be "*".
type dailySpec struct {
	hour   int
	minute int
}

func parseDailySpec(expr string) (dailySpec, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return dailySpec{}, fmt.Errorf("invalid schedule %q: want 5 fields", expr)
	}
	for _, f := range fields[2:] {
		if f != "*" {
			return dailySpec{}, fmt.Errorf("invalid schedule %q: only daily schedules (MINUTE HOUR * * *) are supported", expr)
		}
	}

	minute, err := strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return dailySpec{}, fmt.Errorf("invalid schedule %q: bad minute field %q", expr, fields[0])
	}
	hour, err := strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return dailySpec{}, fmt.Errorf("invalid schedule %q: bad hour field %q", expr, fields[1])
	}

	return dailySpec{hour: hour, minute: minute}, nil
}

// reached reports whether the daily fire time has passed at the given moment
func (d dailySpec) reached(now time.Time) bool {
	if now.Hour() > d.hour {
		return true
	}
	return now.Hour() == d.hour && now.Minute() >= d.minute
}
