package tx

import (
	"github.com/paypost/go-paypost/internal/util/command"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("tx",
		newCheck(),
		newReconcile(),
	)
}
