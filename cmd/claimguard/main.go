// Command claimguard runs the claim verification console and its one-shot
// operator commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "claimguard",
		Short:        "Insurance claim verification console",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "optional dotenv-style config file")

	root.AddCommand(serveCmd())
	root.AddCommand(claimsCmd())
	root.AddCommand(accountsCmd())
	root.AddCommand(tokenCmd())
	return root
}
