package utils

import "time"

// Indian Standard Time (IST, +05:30); trips and refund windows are
// computed against the destination market's clock.
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSecondsIST converts epoch seconds to IST.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsIST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(istLoc)
}

func FormatRFC3339IST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}

// ParseDateOnly parses a YYYY-MM-DD date string as an IST calendar day.
func ParseDateOnly(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, istLoc)
}
