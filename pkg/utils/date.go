package utils

import "time"

const DateLayout = "2006-01-02"

// DayBucket trunca t para a meia-noite do dia no fuso loc
func DayBucket(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DateInLocation reinterpreta uma coluna DATE (lida em UTC pelo driver) no fuso loc
func DateInLocation(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
