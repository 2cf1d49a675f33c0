package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/lifegen/internal/cli"
	"github.com/macropower/lifegen/internal/telemetry"
	"github.com/macropower/lifegen/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName:    "lifegen",
		ServiceVersion: version.GetVersion(),
	})
	if err != nil {
		slog.Error("set up tracing", slog.Any("err", err))

		return 1
	}

	defer func() {
		err := shutdown(ctx)
		if err != nil {
			slog.Error("flush spans", slog.Any("err", err))
		}
	}()

	err = fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(version.GetVersion()),
		fang.WithCommit(version.Revision),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		return 1
	}

	return 0
}
