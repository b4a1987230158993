package fat12

import "time"

// ParseDate reads a FAT directory-entry date stamp: a 16-bit field that is a
// date relative to the MS-DOS epoch of 01/01/1980 (bit 0 is the LSB):
//
//	Bits 0–4:  Day of month, 1-31.
//	Bits 5–8:  Month of year, 1 = January, 1-12.
//	Bits 9–15: Count of years since 1980, 0-127 (1980-2107).
//
// It returns a time.Time with a time-of-day of 00:00:00 UTC. Day or month of
// 0 is unspecified by the FAT spec; ParseDate returns the zero time.Time in
// that case so callers can use time.Time.IsZero().
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := (input & 0x1E0) >> 5
	yearSince1980 := (input & 0xFE00) >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(yearSince1980), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime reads a FAT directory-entry time stamp: a 16-bit field with a
// granularity of 2 seconds:
//
//	Bits 0–4:   2-second count, 0-29 (0-58 seconds).
//	Bits 5–10:  Minutes, 0-59.
//	Bits 11–15: Hours, 0-23.
//
// It returns a time.Time with a date of January 1, year 1, so that
// time.Time.IsZero() holds for midnight. A value that would roll over
// into the next day is clamped to 23:59:59; out-of-range seconds or
// minutes that stay within the day carry into the next minute or hour.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := (input & 0x7E0) >> 5
	hours := (input & 0xF800) >> 11

	result := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)
	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}
	return result
}

// combineDateTime merges a FAT date stamp and time stamp into a single
// time.Time. If the date is unspecified (IsZero), the result is the zero
// time.Time regardless of the time component, matching
// aligator/gofat's stat.go ModTime handling.
func combineDateTime(date, clock uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}
	t := ParseTime(clock)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
