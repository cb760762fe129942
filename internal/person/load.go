package person

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the date format expected in the birthdays file.
const DateLayout = "2006-01-02"

// MalformedEntryError is returned when an entry of the birthdays file is
// missing a required field or contains only whitespace in it.
type MalformedEntryError struct {
	Index int
	Field string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("birthday entry #%d is missing required field %q", e.Index, e.Field)
}

// DateFormatError is returned when the date of a birthdays file entry cannot
// be parsed as YYYY-MM-DD.
type DateFormatError struct {
	Index int
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("birthday entry #%d has an invalid date %q: %s", e.Index, e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

type birthdayEntry struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Date     string `json:"date"`
}

// LoadBirthdays reads the JSON birthdays file at path and returns its entries
// in file order. Each entry requires the string fields name, nickname and date.
func LoadBirthdays(path string) ([]Person, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read birthdays file")
	}

	var entries []birthdayEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "cannot parse birthdays file")
	}

	people := make([]Person, 0, len(entries))
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, &MalformedEntryError{Index: i, Field: "name"}
		}

		nickname := strings.TrimSpace(entry.Nickname)
		if nickname == "" {
			return nil, &MalformedEntryError{Index: i, Field: "nickname"}
		}

		if entry.Date == "" {
			return nil, &MalformedEntryError{Index: i, Field: "date"}
		}

		birthday, err := time.Parse(DateLayout, entry.Date)
		if err != nil {
			return nil, &DateFormatError{Index: i, Value: entry.Date, Err: err}
		}

		people = append(people, Person{Name: name, Nickname: nickname, Birthday: birthday})
	}

	return people, nil
}
