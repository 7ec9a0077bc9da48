package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/gominify/cmd/minify/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Compress commands.CompressCmd `cmd:"" default:"withargs" help:"Minify files with one or more compressors"`
		List     commands.ListCmd     `cmd:"" help:"List available compressors"`
		Action   commands.ActionCmd   `cmd:"" help:"Run as a GitHub Action, reading INPUT_* variables"`
		Debug    bool                 `help:"Enable debug mode."`
		Version  kong.VersionFlag
	}
)

func main() {
	if err := commands.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
