package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the echo pipeline topology as a Graphviz digraph",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p := buildEchoPipeline(slog.Default())
			out, err := p.DOT("echo")
			if err != nil {
				return fmt.Errorf("render pipeline: %w", err)
			}
			fmt.Print(out)
			return nil
		},
	}
	return cmd
}
