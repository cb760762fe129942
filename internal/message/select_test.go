package message

import (
	"math/rand"
	"testing"

	"github.com/chatops/birthday-notifications/internal/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMessages(t *testing.T) {
	ann := person.Person{Name: "Ann", Nickname: "ann"}
	bob := person.Person{Name: "Bob", Nickname: "@bob"}

	rng := func() *rand.Rand { return rand.New(rand.NewSource(42)) }

	t.Run("no-celebrants", func(t *testing.T) {
		messages, err := SelectMessages(nil, []Template{{Text: "Hi {name}"}}, rng())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("no-celebrants-and-no-templates", func(t *testing.T) {
		// The celebrant check comes first: nothing to select is not an error.
		messages, err := SelectMessages(nil, nil, rng())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("celebrant-without-templates", func(t *testing.T) {
		_, err := SelectMessages([]person.Person{ann}, nil, rng())
		assert.ErrorIs(t, err, ErrNoTemplates)
	})

	t.Run("one-message-per-celebrant-in-order", func(t *testing.T) {
		messages, err := SelectMessages(
			[]person.Person{ann, bob},
			[]Template{{Text: "Happy birthday, {mention}!"}},
			rng(),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"Happy birthday, @ann!",
			"Happy birthday, @bob!",
		}, messages)
	})

	t.Run("choices-are-independent", func(t *testing.T) {
		templates := []Template{{Text: "a {name}"}, {Text: "b {name}"}, {Text: "c {name}"}}
		celebrants := []person.Person{ann, ann, ann, ann, ann, ann, ann, ann}

		messages, err := SelectMessages(celebrants, templates, rng())
		require.NoError(t, err)
		require.Len(t, messages, len(celebrants))

		// With replacement: either draw may repeat, but every message is a
		// rendering of one of the templates.
		for _, message := range messages {
			assert.Contains(t, []string{"a Ann", "b Ann", "c Ann"}, message)
		}
	})

	t.Run("render-error-propagates", func(t *testing.T) {
		_, err := SelectMessages([]person.Person{ann}, []Template{{Text: "Hi {surname}"}}, rng())

		var placeholderErr *UnknownPlaceholderError
		assert.ErrorAs(t, err, &placeholderErr)
	})
}
