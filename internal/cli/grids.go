package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geofacet/pkg/grid"
)

var (
	styleGridName = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleGridDims = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleGridDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// newGridsCmd creates the grids command listing the built-in presets.
func newGridsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grids",
		Short: "List the built-in grid presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range grid.Presets() {
				g, err := p.Load()
				if err != nil {
					return err
				}
				rows, cols := g.Dimensions()
				fmt.Printf("%s  %s\n    %s\n",
					styleGridName.Render(p.Name),
					styleGridDims.Render(fmt.Sprintf("%dx%d, %d entities", rows, cols, g.Len())),
					styleGridDesc.Render(p.Description))
			}
			return nil
		},
	}
}
