// Package cli holds the command implementations behind cmd/sauti.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sautiflow/sauti/internal/presentation/tui"
	"github.com/sautiflow/sauti/internal/runtime"
	"github.com/sautiflow/sauti/pkg/domain"
)

// SimulateOptions configures one simulator run.
type SimulateOptions struct {
	Graph        *domain.MenuGraph
	In           io.Reader
	Out          io.Writer
	SubscriberID string
	Logger       *slog.Logger
	// Plain disables the banner and prompt decorations (piped input).
	Plain bool
}

// RunSimulator drives the engine from a line-oriented input stream.
// Each keystroke is processed to completion before the next is read:
// the loop is single-threaded and cooperative by design.
//
// Controls: digits step, "b" goes back, "r" resets, "q" quits.
func RunSimulator(ctx context.Context, opts SimulateOptions) error {
	render := tui.NewRenderer()

	engineOpts := []runtime.EngineOption{}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, runtime.WithLogger(opts.Logger))
	}
	engine := runtime.NewEngine(opts.Graph, engineOpts...)

	sess := domain.NewSession(uuid.NewString(), opts.Graph.ApplicationID, opts.SubscriberID, time.Now())
	sess, err := engine.Start(ctx, sess)
	if err != nil {
		return fmt.Errorf("simulator start: %w", err)
	}

	scanner := bufio.NewScanner(opts.In)
	for {
		screen, err := runtime.Screen(opts.Graph, sess.CurrentNodeID)
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Out, render.Screen(screen))

		if sess.Status == domain.StatusEnded {
			fmt.Fprintln(opts.Out, render.Ended())
			break
		}

		if !opts.Plain {
			fmt.Fprint(opts.Out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "q":
			fmt.Fprint(opts.Out, render.Transcript(sess))
			return scanner.Err()
		case "b":
			sess = engine.Back(ctx, sess)
			continue
		case "r":
			sess = engine.Reset(sess)
			sess, err = engine.Start(ctx, sess)
			if err != nil {
				return err
			}
			continue
		case "":
			continue
		}

		next, outcome, err := engine.Step(ctx, sess, input)
		if err != nil {
			return err
		}
		sess = next

		switch outcome.Kind {
		case domain.OutcomeRejected:
			fmt.Fprintln(opts.Out, render.Invalid(input))
		case domain.OutcomeStalled:
			fmt.Fprintln(opts.Out, render.Stalled(input))
		}
	}

	fmt.Fprint(opts.Out, render.Transcript(sess))
	return scanner.Err()
}
