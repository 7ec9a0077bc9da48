package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

type ListCmd struct {
	Stdout io.Writer `kong:"-"`
}

func (l *ListCmd) Run(ctx context.Context, globals *Globals) error {
	e := newEngine(zerolog.Nop(), ToolsFlags{}, false)

	w := stdout(l.Stdout)
	for _, name := range e.registry.Names() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
