package tx

import (
	"context"
	"fmt"
	"io"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/scan"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReconcile() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Settles one batch of unresolved transactions",
		Long: `Checks pending and unconfirmed transaction records against the chain node,
stores the outcome of executed ones and expires those the node no longer knows.

Uses the SCAN_* configuration of the server.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := reconcileCmdFunc(cmd.Context(), cmd.OutOrStdout()); err != nil {
				log.Fatal().Err(err).Msg("Failed to reconcile transactions")
			}
		},
	}
}

func reconcileCmdFunc(ctx context.Context, out io.Writer) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	client, err := chain.NewAptosClient(cfg.Chain)
	if err != nil {
		return err
	}

	db, err := api.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	clock := api.NewClock()
	service := scan.NewService(cfg.Scan, client, txn.NewSQLRecorder(db, clock), clock)

	progress, err := service.ScanOnce(ctx)
	if err != nil {
		return err
	}

	printProgress(out, progress)

	return nil
}

func printProgress(out io.Writer, p *scan.Progress) {
	fmt.Fprintf(out, "Checked:  %d\n", p.Checked)
	fmt.Fprintf(out, "Resolved: %d\n", p.Resolved)
	fmt.Fprintf(out, "Expired:  %d\n", p.Expired)
	fmt.Fprintf(out, "Pending:  %d\n", p.Pending)
	fmt.Fprintf(out, "Failed:   %d\n", p.Failed)
}
