package form

import (
	"fmt"
	"math"
	"time"
)

// Age describes the time between birth (YYYY-MM-DD) and now in Portuguese:
// whole years when at least one, else whole months, else days started
// since midnight of the birth date.
// Unparseable or future dates give "".
func Age(birth string, now time.Time) string {
	b, err := time.ParseInLocation(DateLayout, birth, now.Location())
	if err != nil {
		return ""
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if b.After(today) {
		return ""
	}

	months := (today.Year()-b.Year())*12 + int(today.Month()-b.Month())
	if today.Day() < b.Day() {
		months--
	}

	switch years := months / 12; {
	case years > 0:
		return plural(years, "ano", "anos")
	case months > 0:
		return plural(months, "mês", "meses")
	}

	// Partial days count as whole ones, so a birth date of today is "1 dia"
	days := int(math.Ceil(now.Sub(b).Hours() / 24))
	return plural(days, "dia", "dias")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
