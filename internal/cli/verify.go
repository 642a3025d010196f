package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinifranco48/performace/internal/domain"
)

func newVerifySchemaCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-schema",
		Short: "Check the header row, resetting the sheet when it does not match",
		Long: "Check the header row of the sheet. When it differs from the expected " +
			"columns the sheet is cleared and the header rewritten; existing rows are lost.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := app.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if _, err := svc.Open(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okColor("header ok:"), strings.Join(domain.Columns(), " | "))
			return nil
		},
	}
}
