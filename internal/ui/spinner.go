package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action while showing a spinner and returns the
// action's error. The spinner's own failure is wrapped separately.
//
//	err := RunWithSpinner(ctx, "Fetching launches...", func(ctx context.Context) error {
//	    return state.Refresh(ctx)
//	})
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	var actionErr error

	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return actionErr
}
