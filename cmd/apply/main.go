package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/AESiR-0/mad-labs-2/wizard"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	serverURL = flag.String("server", getenv("MAD_LABS_URL", "http://localhost:8080"), "Base URL of the application service")
	timeout   = flag.Duration("timeout", 15*time.Second, "Submission timeout")
	debugLog  = flag.Bool("debug", false, "Enable debug output")
)

const backCommand = ":back"

// errQuit ends the session without submitting.
var errQuit = errors.New("quit")

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// lineReader is the subset of *readline.Instance the wizard loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func main() {
	flag.Parse()

	level := "warn"
	if *debugLog {
		level = "debug"
	}
	log := logger.NewStructured(level, "console")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	controller := wizard.NewController(wizard.NewHTTPSubmitter(*serverURL, *timeout), log)
	if err := drive(context.Background(), rl, rl.Stdout(), controller); err != nil && !errors.Is(err, errQuit) {
		color.New(color.FgHiRed).Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// drive runs the prompt loop until the application is accepted or the
// user quits.
func drive(ctx context.Context, in lineReader, out io.Writer, c *wizard.Controller) error {
	title := color.New(color.FgHiWhite, color.Bold)
	muted := color.New(color.FgHiBlack)
	red := color.New(color.FgHiRed)
	green := color.New(color.FgHiGreen)

	read := func(prompt string) (string, error) {
		in.SetPrompt(prompt)
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return strings.TrimSpace(line), err
	}

	title.Fprintln(out, "Apply to Mad Labs")

	for {
		m := c.Machine()
		switch m.Status() {
		case wizard.StatusRoleSelect:
			line, err := read("I am a (kid/parent/mentor): ")
			if err != nil {
				return err
			}
			role, err := models.ParseRole(strings.ToLower(line))
			if err != nil {
				red.Fprintln(out, "Pick kid, parent or mentor.")
				continue
			}
			if err := c.SelectRole(role); err != nil {
				return err
			}

		case wizard.StatusEditing, wizard.StatusFailed:
			step, _ := m.CurrentStep()
			fmt.Fprintln(out)
			muted.Fprintf(out, "Step %d of %d\n", m.StepIndex()+1, m.TotalSteps())
			title.Fprintln(out, step.Title)
			if msg := m.SubmitError(); msg != "" {
				red.Fprintln(out, msg)
			}

			back := false
			for _, f := range step.Fields {
				prompt := f.Label
				if cur := m.Field(f.Key); cur != "" {
					prompt += " [" + cur + "]"
				} else if f.Optional {
					prompt += " (optional)"
				}
				line, err := read(prompt + ": ")
				if err != nil {
					return err
				}
				if line == backCommand {
					back = true
					break
				}
				if line == "" && m.Field(f.Key) != "" {
					continue
				}
				if err := c.SetField(f.Key, line); err != nil {
					return err
				}
			}

			if back {
				if err := c.Back(); err != nil {
					return err
				}
				continue
			}

			if err := c.Next(ctx); err != nil {
				return err
			}
			for _, f := range step.Fields {
				if msg, ok := m.FieldErrors()[f.Key]; ok {
					red.Fprintf(out, "%s: %s\n", f.Label, msg)
				}
			}

		case wizard.StatusSucceeded:
			fmt.Fprintln(out)
			green.Fprintln(out, "Application Received!")
			fmt.Fprintln(out, "We're excited to review your application. You'll hear from us within 48 hours with next steps.")
			return nil

		default:
			return fmt.Errorf("unexpected wizard state %s", m.Status())
		}
	}
}
