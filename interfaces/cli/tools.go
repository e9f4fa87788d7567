package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcparena/arena-go/infrastructure/tools"
)

// newToolsCmd creates the tools command.
func (a *App) newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the built-in tools",
		Long:  `List the tools available to agents, with their descriptions and annotations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tANNOTATIONS\tDESCRIPTION")
			for _, t := range tools.DefaultSet("") {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name(), annotationSummary(t.Annotations().ReadOnly, t.Annotations().Destructive, t.Annotations().Idempotent), t.Description())
			}
			return w.Flush()
		},
	}
}

func annotationSummary(readOnly, destructive, idempotent bool) string {
	switch {
	case destructive:
		return "destructive"
	case readOnly && idempotent:
		return "read-only, idempotent"
	case readOnly:
		return "read-only"
	case idempotent:
		return "idempotent"
	default:
		return "-"
	}
}
