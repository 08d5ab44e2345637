package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrianariton/cellbridge/internal/host"
	"github.com/adrianariton/cellbridge/internal/tools"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the operations the orchestrator may invoke",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			reg := tools.NewRegistry(host.NewWorkbook())
			for _, name := range reg.Names() {
				t, _ := reg.Resolve(name)
				fmt.Printf("%-22s %s\n", name, t.Description())
			}
		},
	}
}
