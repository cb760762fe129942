package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/chatops/birthday-notifications/internal"
	"github.com/chatops/birthday-notifications/internal/channel"
	"github.com/chatops/birthday-notifications/internal/config"
	"github.com/chatops/birthday-notifications/internal/person"
	"github.com/chatops/birthday-notifications/internal/pipeline"
	"github.com/icinga/icingadb/pkg/logging"
	flags "github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type options struct {
	Config   string `short:"c" long:"config" description:"path to config file"`
	Date     string `long:"date" description:"run for the given date (YYYY-MM-DD) instead of today"`
	Upcoming int    `long:"upcoming" description:"list birthdays within the next N days instead of sending messages"`
	Version  bool   `long:"version" description:"print version and exit"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(config.ExitSuccess)
		}

		os.Exit(config.ExitFailure)
	}

	if opts.Version {
		fmt.Println("Birthday Notifications version:", internal.Version.Version)
		fmt.Println()

		fmt.Println("Build information:")
		fmt.Printf("  Go version: %s (%s, %s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if internal.Version.Commit != "" {
			fmt.Println("  Git commit:", internal.Version.Commit)
		}
		return
	}

	if err := config.LoadConfig(opts.Config); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(config.ExitFailure)
	}

	conf := config.Config()

	logs, err := logging.NewLogging(
		"birthday-notifications",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot initialize logging:", err)
		os.Exit(config.ExitFailure)
	}

	logger := logs.GetLogger()

	ref := time.Now()
	if opts.Date != "" {
		ref, err = time.ParseInLocation(person.DateLayout, opts.Date, time.Local)
		if err != nil {
			logger.Fatalw("Invalid --date value", zap.String("date", opts.Date), zap.Error(err))
		}
	}

	if opts.Upcoming > 0 {
		printUpcoming(conf.BirthdaysPath, ref, opts.Upcoming, logger)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(
		conf.BirthdaysPath,
		conf.TemplatesPath,
		func(token, chatID string) pipeline.Notifier {
			return channel.NewTelegram(conf.APIBaseURL, token, chatID, conf.APITimeout, logs.GetChildLogger("telegram"))
		},
		logs.GetChildLogger("pipeline"),
	)

	messages, err := p.RunAt(ctx, ref)
	if err != nil {
		logger.Fatalw("Congratulation run failed", zap.Error(err))
	}

	if len(messages) == 0 {
		fmt.Println("No birthdays today.")
		return
	}

	fmt.Println("Sent the following birthday messages:")
	for _, message := range messages {
		fmt.Println("-", message)
	}
}

func printUpcoming(birthdaysPath string, ref time.Time, days int, logger *logging.Logger) {
	people, err := person.LoadBirthdays(birthdaysPath)
	if err != nil {
		logger.Fatalw("Cannot load birthdays", zap.Error(err))
	}

	occurrences, err := person.Upcoming(people, ref, days)
	if err != nil {
		logger.Fatalw("Cannot compute upcoming birthdays", zap.Error(err))
	}

	if len(occurrences) == 0 {
		fmt.Printf("No birthdays within the next %d days.\n", days)
		return
	}

	for _, occurrence := range occurrences {
		fmt.Printf("%s  %s\n", occurrence.Date.Format(person.DateLayout), occurrence.Person.Name)
	}
}
