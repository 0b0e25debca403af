package edit

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/remind/pkg/app"
)

type Edit struct {
	IDs     []string
	Service *app.Service
}

// Do serializes the selected tasks back into input text and deletes the
// originals. The printed text is the prefill: correct it and feed it back to
// add.
func (e *Edit) Do(ctx context.Context) error {
	prefill, err := e.Service.EditTasks(ctx, e.IDs)
	if err != nil {
		return err
	}
	hint := color.New(color.Faint, color.Italic)
	_, _ = hint.Println("edit the text below, then: remind add <text>")
	fmt.Println(prefill)
	return nil
}
