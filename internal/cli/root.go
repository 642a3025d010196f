// Package cli implements the performace command line.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vinifranco48/performace/internal/domain"
)

// OpenFunc opens the configured store. The returned func releases it.
type OpenFunc func(ctx context.Context) (domain.Connector, func(), error)

// App carries the dependencies shared by every subcommand.
type App struct {
	Open    OpenFunc
	Options []domain.Option
}

var (
	okColor    = color.New(color.FgGreen, color.Bold).SprintFunc()
	errColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	labelColor = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// NewRootCommand assembles the command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "performace",
		Short:         "Record running workouts and inspect the run history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRecordCommand(app),
		newHistoryCommand(app),
		newVerifySchemaCommand(app),
		newPaceCommand(),
	)
	return root
}

func (a *App) service(ctx context.Context) (*domain.Service, func(), error) {
	connector, closeFn, err := a.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	if closeFn == nil {
		closeFn = func() {}
	}
	return domain.NewService(connector, a.Options...), closeFn, nil
}
