package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/chatops/birthday-notifications/internal/message"
	"github.com/chatops/birthday-notifications/internal/person"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
)

// Environment variables holding the transport credential and the destination
// chat. Both are only required on days with at least one celebrant.
const (
	EnvBotToken = "TELEGRAM_BOT_TOKEN"
	EnvChatID   = "TELEGRAM_CHAT_ID"
)

// MissingEnvError is returned when a required environment variable is absent
// or empty.
type MissingEnvError struct {
	Name string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("environment variable %s is required but missing", e.Name)
}

// Notifier delivers a single rendered message to the destination chat.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// NotifierFactory builds the Notifier once the credential and destination are
// known. The factory is only invoked on days with at least one celebrant.
type NotifierFactory func(token, chatID string) Notifier

// Pipeline runs the congratulation sequence: load the birthdays and templates
// files, filter celebrants for a reference date, render one random template
// per celebrant and send the results in order.
//
// Clock, LookupEnv and Rand are initialized by New and may be replaced before
// Run for testing.
type Pipeline struct {
	BirthdaysPath string
	TemplatesPath string

	Clock       Clock
	LookupEnv   func(name string) (string, bool)
	Rand        *rand.Rand
	NewNotifier NotifierFactory

	logger *logging.Logger
}

// New returns a Pipeline reading the given data files and dispatching through
// notifiers built by newNotifier.
func New(birthdaysPath, templatesPath string, newNotifier NotifierFactory, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		BirthdaysPath: birthdaysPath,
		TemplatesPath: templatesPath,
		Clock:         RealClock{},
		LookupEnv:     os.LookupEnv,
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		NewNotifier:   newNotifier,
		logger:        logger,
	}
}

// Run executes the pipeline for the current calendar date.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	return p.RunAt(ctx, p.Clock.Now())
}

// RunAt executes the pipeline for the calendar date of ref and returns the
// rendered messages that were sent, in celebrant order.
//
// Any error is terminal for the run: loader errors and missing configuration
// abort before anything is sent, the first transport failure aborts with the
// later sends unattempted. Messages already sent are not undone.
func (p *Pipeline) RunAt(ctx context.Context, ref time.Time) ([]string, error) {
	people, err := person.LoadBirthdays(p.BirthdaysPath)
	if err != nil {
		return nil, err
	}

	templates, err := message.LoadTemplates(p.TemplatesPath)
	if err != nil {
		return nil, err
	}

	p.logger.Debugw("Loaded data files",
		zap.Int("people", len(people)), zap.Int("templates", len(templates)))

	celebrants := person.Celebrants(people, ref)
	if len(celebrants) == 0 {
		// Credentials are deliberately not read on a no-celebrant day.
		p.logger.Infow("No birthdays on reference date", zap.String("date", ref.Format(person.DateLayout)))
		return nil, nil
	}

	token, err := p.requireEnv(EnvBotToken)
	if err != nil {
		return nil, err
	}

	chatID, err := p.requireEnv(EnvChatID)
	if err != nil {
		return nil, err
	}

	messages, err := message.SelectMessages(celebrants, templates, p.Rand)
	if err != nil {
		return nil, err
	}

	notifier := p.NewNotifier(token, chatID)
	for i, msg := range messages {
		if err := notifier.Send(ctx, msg); err != nil {
			return nil, err
		}

		p.logger.Infow("Sent birthday message", zap.Stringer("celebrant", celebrants[i]))
	}

	return messages, nil
}

func (p *Pipeline) requireEnv(name string) (string, error) {
	if value, ok := p.LookupEnv(name); ok && value != "" {
		return value, nil
	}

	return "", &MissingEnvError{Name: name}
}
