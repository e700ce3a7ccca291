package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	service "github.com/okian/gobu/internal/app"
	"github.com/okian/gobu/pkg/logger"
	"github.com/spf13/cobra"
)

const pageSeparator = "\n----\n"

var errNoReply = errors.New("no reply for command")

var queryCmd = &cobra.Command{
	Use:   "query <command...>",
	Short: "Run one bot command against the dataset and print the reply",
	Long: `Run one bot command, without the prefix, against the configured
dataset and print every page of the reply. Logs go to stderr.`,
	Example: `  gobu query hatch rain core, ghulture
  gobu query talents above: spell-proof rarity: epic
  gobu query help pets`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := setup(ctx, logWriter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	svc := newService(cfg)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer func() { _ = svc.Stop(ctx) }()

	reply := svc.Execute(ctx, strings.Join(args, " "))
	return printReply(cmd.OutOrStdout(), args[0], reply)
}

func printReply(w io.Writer, name string, reply service.Reply) error {
	if reply.Silent() {
		return fmt.Errorf("%w: %q", errNoReply, name)
	}
	out := reply.Text
	if len(reply.Pages) > 0 {
		out = strings.Join(reply.Pages, pageSeparator)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func logWriter(w io.Writer) logger.Option {
	if w == nil {
		w = os.Stderr
	}
	return logger.WithOutput(w)
}
