package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinifranco48/performace/internal/domain"
)

func newPaceCommand() *cobra.Command {
	var (
		distance float64
		duration string
	)

	cmd := &cobra.Command{
		Use:     "pace",
		Short:   "Compute the pace for a distance and duration without touching the sheet",
		Example: "  performace pace --distance 5 --duration 0:25:30\n  performace pace --distance 10 --duration 52m10s",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseFlexibleDuration(duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s min/km\n", labelColor("Pace:"), domain.ComputePace(d, distance))
			return nil
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "distance in km")
	cmd.Flags().StringVar(&duration, "duration", "0:00:00", "duration as H:MM:SS or a Go duration such as 25m30s")
	return cmd
}

// parseFlexibleDuration accepts the sheet's H:MM:SS format or a Go duration.
func parseFlexibleDuration(s string) (time.Duration, error) {
	if d, err := domain.ParseDuration(s); err == nil {
		return d, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --duration %q", s)
	}
	return d, nil
}
