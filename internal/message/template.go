package message

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/chatops/birthday-notifications/internal/person"
	"github.com/pkg/errors"
)

// Template is a congratulation message pattern. The placeholders {name} and
// {mention} are substituted per person when rendering.
type Template struct {
	Text string
}

// UnknownPlaceholderError is returned by Render when the pattern references a
// placeholder other than {name} or {mention}.
type UnknownPlaceholderError struct {
	Placeholder string
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("message template references unknown placeholder %q", e.Placeholder)
}

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

// Render substitutes the template's placeholders with the person's name and
// mention handle. Rendering is deterministic for a fixed template and person.
func (t Template) Render(p person.Person) (string, error) {
	var unknown string
	rendered := placeholderPattern.ReplaceAllStringFunc(t.Text, func(placeholder string) string {
		switch placeholder {
		case "{name}":
			return p.Name
		case "{mention}":
			return p.Mention()
		default:
			if unknown == "" {
				unknown = placeholder
			}
			return placeholder
		}
	})

	if unknown != "" {
		return "", &UnknownPlaceholderError{Placeholder: unknown}
	}

	return rendered, nil
}

// LoadTemplates reads the JSON templates file at path, an array of strings,
// and returns the trimmed templates in file order. Entries that are empty
// after trimming are dropped.
func LoadTemplates(path string) ([]Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read templates file")
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrap(err, "cannot parse templates file")
	}

	var templates []Template
	for _, entry := range entries {
		if text := strings.TrimSpace(entry); text != "" {
			templates = append(templates, Template{Text: text})
		}
	}

	return templates, nil
}
