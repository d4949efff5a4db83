// Command cosmofield realizes Gaussian random density fields and measures
// their power spectra.
//
// Usage:
//
//	cosmofield <command> [flags]
//
// Examples:
//
//	cosmofield realize --config run.yaml
//	cosmofield powerspec delta -n 128 -L 512
//	cosmofield curvekey --table 4
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-cosmo/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
