// In file: cmd/assistantctl/main.go

// Package main implements assistantctl, the operator CLI for the assistant
// gateway. It builds the same services the HTTP gateway does, so a message or
// tool call can be tried from a shell, and it seeds the shared Redis ledger
// ahead of a deployment.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/config"
	"github.com/dileep-u-k/assistant-gateway/internal/logger"
)

var version = "dev"

// cliState is filled by the root command's PersistentPreRunE.
type cliState struct {
	cfg     *config.AppConfig
	log     *zap.Logger
	verbose bool
	asJSON  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:   "assistantctl",
		Short: "Operate the assistant gateway from the command line",
		Long: `assistantctl drives the assistant gateway's services without the HTTP server.

Examples:
  assistantctl ask "order 2 biryani"
  assistantctl ask --stream "what's my balance"
  assistantctl invoke banking process_payment --arg account_id=123456 --arg amount=25 --arg merchant=Cafe
  assistantctl tools
  assistantctl seed --reset`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			st.cfg = cfg

			level := "warn"
			if st.verbose {
				level = "debug"
			}
			st.log = logger.New(level, cfg.LogFormat)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.log != nil {
				_ = st.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Log at debug level")
	root.PersistentFlags().BoolVar(&st.asJSON, "json", false, "Output as JSON")

	root.AddCommand(
		askCmd(st),
		invokeCmd(st),
		toolsCmd(st),
		seedCmd(st),
		versionCmd(st),
	)
	return root
}
