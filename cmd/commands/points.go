package commands

import (
	"fmt"
	"sort"

	"github.com/extpoint/extpoint/extension/contract"

	"github.com/spf13/cobra"
)

// NewPointsCommand creates the points command
func NewPointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "points",
		Short: "List the host application's extension points",
		Run: func(cmd *cobra.Command, args []string) {
			contracts := contract.Contracts()
			for _, point := range contract.Points() {
				c := contracts[point]
				fmt.Printf("%s\n", c.Point)
				if c.Description != "" {
					fmt.Printf("  %s\n", c.Description)
				}
				if len(c.Inbound) > 0 {
					fmt.Printf("  inbound:  %v\n", sortedNames(c.Inbound))
				}
				if len(c.Outbound) > 0 {
					fmt.Printf("  outbound: %v\n", sortedNames(c.Outbound))
				}
			}
		},
	}
}

// sortedNames lists event names of one contract side, sorted
func sortedNames(events map[string]any) []string {
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
