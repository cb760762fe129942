package message

import (
	"errors"
	"math/rand"

	"github.com/chatops/birthday-notifications/internal/person"
)

// ErrNoTemplates is returned when messages should be selected but no templates
// are available.
var ErrNoTemplates = errors.New("no message templates available")

// SelectMessages renders one message per celebrant, in celebrant order,
// choosing a template uniformly at random and independently for each. The same
// template may be chosen for multiple celebrants. With no celebrants there is
// nothing to select and nil is returned even when templates are empty;
// otherwise empty templates fail with ErrNoTemplates before any random draw.
func SelectMessages(celebrants []person.Person, templates []Template, rng *rand.Rand) ([]string, error) {
	if len(celebrants) == 0 {
		return nil, nil
	}

	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}

	messages := make([]string, 0, len(celebrants))
	for _, celebrant := range celebrants {
		template := templates[rng.Intn(len(templates))]

		rendered, err := template.Render(celebrant)
		if err != nil {
			return nil, err
		}

		messages = append(messages, rendered)
	}

	return messages, nil
}
