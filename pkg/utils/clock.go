package utils

import (
	"regexp"
	"strconv"
)

// "HH:MM" inside a day, 24:00 allowed as an end bound
var clockRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$|^24:00$`)

// ClockString renders minutes of day as HH:MM
func ClockString(minutes int) string {
	h, m := minutes/60, minutes%60
	return pad2(h) + ":" + pad2(m)
}

// ParseClock parses HH:MM into minutes of day, 24:00 allowed
func ParseClock(value string) (int, bool) {
	if !clockRegexp.MatchString(value) {
		return 0, false
	}
	h, _ := strconv.Atoi(value[:2])
	m, _ := strconv.Atoi(value[3:])
	return h*60 + m, true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
