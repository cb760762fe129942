package person

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPerson_Mention(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		want     string
	}{
		{"plain", "bob", "@bob"},
		{"already-prefixed", "@bob", "@bob"},
		{"surrounding-whitespace", "  bob ", "@bob"},
		{"prefixed-with-whitespace", " @bob", "@bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Person{Name: "Bob", Nickname: tt.nickname}
			assert.Equal(t, tt.want, p.Mention())
		})
	}
}

func TestCelebrants(t *testing.T) {
	alice := Person{Name: "Alice", Nickname: "alice", Birthday: date(1990, time.March, 14)}
	bob := Person{Name: "Bob", Nickname: "bob", Birthday: date(1984, time.March, 14)}
	carol := Person{Name: "Carol", Nickname: "carol", Birthday: date(1990, time.April, 14)}
	dan := Person{Name: "Dan", Nickname: "dan", Birthday: date(1990, time.March, 15)}

	tests := []struct {
		name   string
		people []Person
		ref    time.Time
		want   []Person
	}{
		{
			name:   "empty",
			people: nil,
			ref:    date(2024, time.March, 14),
			want:   nil,
		},
		{
			name:   "nobody-matches",
			people: []Person{carol, dan},
			ref:    date(2024, time.March, 14),
			want:   nil,
		},
		{
			name:   "year-is-ignored",
			people: []Person{alice, bob},
			ref:    date(2024, time.March, 14),
			want:   []Person{alice, bob},
		},
		{
			name:   "same-month-different-day",
			people: []Person{alice, dan},
			ref:    date(2024, time.March, 15),
			want:   []Person{dan},
		},
		{
			name:   "same-day-different-month",
			people: []Person{alice, carol},
			ref:    date(2024, time.April, 14),
			want:   []Person{carol},
		},
		{
			name:   "input-order-is-preserved",
			people: []Person{bob, alice, carol},
			ref:    date(2024, time.March, 14),
			want:   []Person{bob, alice},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Celebrants(tt.people, tt.ref))
		})
	}
}
