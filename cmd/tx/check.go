package tx

import (
	"context"
	"fmt"
	"io"

	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const recordFlag = "record"

func newCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <hash>",
		Short: "Reconciles a transaction with the chain",
		Long: `Looks up a transaction on the chain node and prints its status.
With --record the stored pipeline record is printed and updated as well.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			withRecord, err := cmd.Flags().GetBool(recordFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to parse record flag")
			}

			if err := checkCmdFunc(cmd.Context(), cmd.OutOrStdout(), args[0], withRecord); err != nil {
				log.Fatal().Err(err).Msg("Failed to check transaction")
			}
		},
	}

	cmd.Flags().Bool(recordFlag, false, "Print and update the stored transaction record.")

	return cmd
}

func checkCmdFunc(ctx context.Context, out io.Writer, hash string, withRecord bool) error {
	cfg := config.DefaultServiceConfigFromEnv()
	command.SetupLogger(cfg)

	client, err := chain.NewAptosClient(cfg.Chain)
	if err != nil {
		return err
	}

	status, err := client.TransactionByHash(ctx, hash)
	if err != nil {
		return err
	}

	printStatus(out, status)

	if !withRecord {
		return nil
	}

	db, err := api.NewDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	recorder := txn.NewSQLRecorder(db, api.NewClock())

	rec, err := recorder.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, txn.ErrRecordNotFound) {
			fmt.Fprintln(out, "Record:   none")
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Record:   %s by %s (%s), stored as %s\n", rec.Function, rec.Sender, rec.WalletID, rec.Status)

	if executed := status.Executed; executed != nil {
		outcome := txn.RecordStatusFailure
		if executed.Success {
			outcome = txn.RecordStatusSuccess
		}
		if outcome != rec.Status {
			if err := recorder.RecordOutcome(ctx, hash, outcome, executed); err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated:  %s -> %s\n", rec.Status, outcome)
		}
	}

	return nil
}

func printStatus(out io.Writer, status *chain.TransactionStatus) {
	fmt.Fprintf(out, "Hash:     %s\n", status.Hash)
	fmt.Fprintf(out, "Status:   %s\n", status.Status())

	if executed := status.Executed; executed != nil {
		fmt.Fprintf(out, "Version:  %d\n", executed.Version)
		fmt.Fprintf(out, "VM:       %s\n", executed.VMStatus)
		fmt.Fprintf(out, "Gas used: %d\n", executed.GasUsed)
		for _, e := range executed.Events {
			fmt.Fprintf(out, "Event:    %s %v\n", e.Type, e.Data)
		}
	}
}
