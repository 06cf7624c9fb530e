package domain

import "time"

// DaysPerMonth is the average Gregorian month length used for time-based intervals.
const DaysPerMonth = 30.44

type ProgressAxis string

const (
	AxisDistance ProgressAxis = "distance"
	AxisTime     ProgressAxis = "time"
)

type Progress struct {
	Axis      ProgressAxis `json:"axis"`
	Percent   float64      `json:"percent"`
	Consumed  float64      `json:"consumed"`
	Target    int          `json:"target"`
	Remaining float64      `json:"remaining"`
	Overdue   bool         `json:"overdue"`
}

// ComputeProgress reports how far the vehicle has moved toward the next due
// point of event. A distance interval wins over a time interval. It returns
// nil when the event has no interval.
func ComputeProgress(event *MaintenanceEvent, currentKm int, now time.Time) *Progress {
	if event == nil {
		return nil
	}

	if event.IntervalKm != nil && *event.IntervalKm > 0 {
		target := *event.IntervalKm
		consumed := float64(currentKm - event.KmAtService)
		return newProgress(AxisDistance, consumed, target)
	}

	if event.IntervalTimeMonths != nil && *event.IntervalTimeMonths > 0 {
		target := *event.IntervalTimeMonths
		days := now.Sub(event.PerformedAt).Hours() / 24
		return newProgress(AxisTime, days/DaysPerMonth, target)
	}

	return nil
}

func newProgress(axis ProgressAxis, consumed float64, target int) *Progress {
	return &Progress{
		Axis:      axis,
		Percent:   clamp(consumed/float64(target)*100, 0, 100),
		Consumed:  consumed,
		Target:    target,
		Remaining: float64(target) - consumed,
		Overdue:   consumed >= float64(target),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
