package postgres

import "time"

const dateLayout = "2006-01-02"

// dateArg sends the calendar day of t as text. A time.Time parameter would be
// cast to date in the session time zone and could land on the previous day.
func dateArg(t time.Time) string {
	return t.Format(dateLayout)
}

func nullDateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateArg(*t)
}

// calendarDate pins a DATE column value to midnight UTC.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
