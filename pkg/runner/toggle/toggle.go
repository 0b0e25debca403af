package toggle

import (
	"context"

	"github.com/fatih/color"

	"tableflip.dev/remind/pkg/app"
)

type Toggle struct {
	IDs     []string
	Service *app.Service
}

func (t *Toggle) Do(ctx context.Context) error {
	done := color.New(color.FgGreen)
	pending := color.New(color.Faint)

	for _, id := range t.IDs {
		tk, err := t.Service.ToggleCompletion(ctx, id)
		if err != nil {
			return err
		}
		if tk.Completed {
			_, _ = done.Printf("✓ %s\n", tk.Content)
		} else {
			_, _ = pending.Printf("○ %s\n", tk.Content)
		}
	}
	return nil
}
