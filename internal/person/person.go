package person

import (
	"fmt"
	"strings"
	"time"
)

// Person is a single entry of the birthdays file. Name and Nickname are
// trimmed of surrounding whitespace when loaded; only month and day of
// Birthday are relevant for matching, the year is the year of birth.
type Person struct {
	Name     string
	Nickname string
	Birthday time.Time
}

// Mention returns the @handle used to notify the person in a chat. A nickname
// that already carries the @ prefix is used as-is.
func (p Person) Mention() string {
	nick := strings.TrimSpace(p.Nickname)
	if strings.HasPrefix(nick, "@") {
		return nick
	}

	return "@" + nick
}

// BirthdayOn reports whether the person's birthday recurs on the calendar date
// of ref. The year is ignored.
func (p Person) BirthdayOn(ref time.Time) bool {
	return p.Birthday.Month() == ref.Month() && p.Birthday.Day() == ref.Day()
}

func (p Person) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Mention())
}

// Celebrants returns the subset of people whose birthday falls on the calendar
// date of ref, preserving the input order. An empty result is not an error.
func Celebrants(people []Person, ref time.Time) []Person {
	var celebrants []Person
	for _, p := range people {
		if p.BirthdayOn(ref) {
			celebrants = append(celebrants, p)
		}
	}

	return celebrants
}
