package del

import (
	"context"

	"github.com/fatih/color"

	"tableflip.dev/remind/pkg/app"
)

type Delete struct {
	IDs     []string
	Service *app.Service
}

func (d *Delete) Do(ctx context.Context) error {
	removed, err := d.Service.DeleteTasks(ctx, d.IDs)
	if err != nil {
		return err
	}
	f := color.New(color.Faint, color.CrossedOut)
	for _, tk := range removed {
		_, _ = f.Println(tk.Content)
	}
	return nil
}
