package tui

import (
	"context"
	"errors"
	"io"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/input"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/renderer"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
)

type readResult struct {
	line string
	err  error
}

// readLines feeds lines from in until it fails or stop is closed. A read
// already blocked on in is left behind when stop closes; its line is dropped.
func readLines(in *input.LineReader, stop <-chan struct{}) <-chan readResult {
	out := make(chan readResult)
	go func() {
		defer close(out)
		for {
			line, err := in.ReadLine()
			select {
			case out <- readResult{line, err}:
			case <-stop:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

// Play drives a session from a line reader until the player wins, input
// runs out or ctx is cancelled. won is false unless a Result was delivered.
// Cancelling ctx returns at once, even while waiting for a line.
func Play(ctx context.Context, e *session.Engine, in *input.LineReader, r renderer.Renderer) (res session.Result, won bool, err error) {
	unsubscribe := e.Subscribe(r.Update)
	defer unsubscribe()

	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(in, stop)

	r.Update(e.State())

	for {
		if ctx.Err() != nil {
			return session.Result{}, false, ctx.Err()
		}
		r.Prompt()

		var next readResult
		select {
		case <-ctx.Done():
			return session.Result{}, false, ctx.Err()
		case next = <-lines:
		}
		if errors.Is(next.err, io.EOF) {
			return session.Result{}, false, nil
		}
		if next.err != nil {
			return session.Result{}, false, next.err
		}

		if err := e.Submit(ctx, next.line); err != nil && !errors.Is(err, session.ErrSessionEnded) {
			return session.Result{}, false, err
		}

		select {
		case res, ok := <-e.Done():
			return res, ok, nil
		default:
		}
	}
}
