package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dotflex/dotflex/cmd/dotflex"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/style"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := dotflex.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if code := errors.GetErrorCode(err); code.Persistent() {
			log.Error().
				Str("code", string(code)).
				Fields(errors.GetErrorDetails(err)).
				Msg("Configuration or stored state is unusable")
		}
		renderer := style.NewRenderer(style.Resolve(style.FormatAuto, os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		stop()
		os.Exit(1)
	}
}
