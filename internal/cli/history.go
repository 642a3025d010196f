package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print every recorded run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := app.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			page, err := svc.Evaluate(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("erro ao conectar à planilha: %w", err)
			}
			if page.LoadErr != nil {
				return fmt.Errorf("erro ao carregar os dados: %w", page.LoadErr)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, labelColor("Histórico de Corridas"))
			if page.History.Len() == 0 {
				fmt.Fprintln(out, "Nenhuma corrida registrada.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, strings.Join(page.History.Columns, "\t"))
			for _, row := range page.History.Rows() {
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			return tw.Flush()
		},
	}
}
