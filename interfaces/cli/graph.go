package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcparena/arena-go/domain/agent"
	"github.com/mcparena/arena-go/infrastructure/statemachine"
)

// newGraphCmd creates the graph command.
func (a *App) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [strategy]",
		Short: "Print a strategy's statechart",
		Long: `Print the states and transitions of a reasoning strategy.

With no argument, prints the statechart of every strategy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := agent.AllStrategies()
			if len(args) > 0 {
				strategies = []agent.Strategy{agent.Strategy(args[0])}
			}

			for i, s := range strategies {
				desc, err := statemachine.Describe(s)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				fmt.Fprint(a.stdout, desc.String())
			}
			return nil
		},
	}
	return cmd
}
