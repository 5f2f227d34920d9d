package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// YearsBetween returns the whole-year span between two ages, floored at zero
func YearsBetween(fromAge, toAge int) int {
	if toAge <= fromAge {
		return 0
	}
	return toAge - fromAge
}
