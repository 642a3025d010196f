package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinifranco48/performace/internal/domain"
)

func newRecordCommand(app *App) *cobra.Command {
	var (
		date string
		sub  domain.Submission
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Append a run to the sheet and print the updated history size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := time.Parse(domain.DateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
			}
			sub.Date = parsed
			if err := sub.Validate(); err != nil {
				return err
			}

			svc, closeFn, err := app.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			page, err := svc.Evaluate(cmd.Context(), &sub)
			if err != nil {
				return fmt.Errorf("erro ao conectar à planilha: %w", err)
			}

			out := cmd.OutOrStdout()
			if page.InsertErr != nil {
				fmt.Fprintln(out, errColor("Erro ao registrar os dados:"), page.InsertErr)
				return page.InsertErr
			}
			fmt.Fprintln(out, okColor("Dados registrados com sucesso!"))
			fmt.Fprintf(out, "%s %s\n", labelColor("Tempo:"), domain.FormatDuration(page.Entry.Duration))
			fmt.Fprintf(out, "%s %s min/km\n", labelColor("Pace:"), page.Entry.Pace)
			if page.LoadErr != nil {
				fmt.Fprintln(out, errColor("Erro ao carregar os dados:"), page.LoadErr)
				return nil
			}
			fmt.Fprintf(out, "%s %d\n", labelColor("Corridas registradas:"), page.History.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(domain.DateLayout), "run date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&sub.DistanceKm, "distance", 0, "distance in km")
	cmd.Flags().IntVar(&sub.Hours, "hours", 0, "duration hours")
	cmd.Flags().IntVar(&sub.Minutes, "minutes", 0, "duration minutes (0-59)")
	cmd.Flags().IntVar(&sub.Seconds, "seconds", 0, "duration seconds (0-59)")
	cmd.Flags().Float64Var(&sub.WeightKg, "weight", 0, "body weight in kg")
	return cmd
}
