package person

import (
	"time"

	"github.com/teambition/rrule-go"
	"golang.org/x/exp/slices"
)

// Occurrence pairs a person with a concrete date on which their birthday
// recurs.
type Occurrence struct {
	Person Person
	Date   time.Time
}

// NextOccurrence returns the next date at or after ref on which the person's
// birthday recurs, as an RFC 5545 YEARLY recurrence starting at the date of
// birth. A birthday on ref itself counts as the next occurrence. Note that a
// February 29th birthday only recurs in leap years.
func (p Person) NextOccurrence(ref time.Time) (time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq: rrule.YEARLY,
		Dtstart: time.Date(
			p.Birthday.Year(), p.Birthday.Month(), p.Birthday.Day(),
			0, 0, 0, 0, ref.Location(),
		),
	})
	if err != nil {
		return time.Time{}, err
	}

	return rule.After(startOfDay(ref), true), nil
}

// Upcoming returns the occurrences of the given people's birthdays within the
// next days after ref (inclusive of ref's date), stable-sorted by date so that
// people sharing a day keep their input order. People whose birthday does not
// recur within the horizon are omitted.
func Upcoming(people []Person, ref time.Time, days int) ([]Occurrence, error) {
	horizon := startOfDay(ref).AddDate(0, 0, days)

	var occurrences []Occurrence
	for _, p := range people {
		next, err := p.NextOccurrence(ref)
		if err != nil {
			return nil, err
		}

		if !next.IsZero() && next.Before(horizon) {
			occurrences = append(occurrences, Occurrence{Person: p, Date: next})
		}
	}

	slices.SortStableFunc(occurrences, func(a, b Occurrence) bool {
		return a.Date.Before(b.Date)
	})

	return occurrences, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
