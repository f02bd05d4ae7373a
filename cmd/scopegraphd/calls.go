package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/viant/scopegraph/graph"
)

var callsCmd = &cobra.Command{
	Use:   "calls <root> <file> <line>",
	Short: "List method calls inside the scope enclosing a file:line location, nearest first",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		root, file, lineArg := args[0], args[1], args[2]

		line, err := strconv.Atoi(lineArg)
		if err != nil {
			return fmt.Errorf("parse line: %w", err)
		}

		repo, err := openRepository(ctx, root)
		if err != nil {
			return err
		}

		scope, err := repo.FindScope(graph.Location{FilePath: file, StartLine: line})
		if err != nil {
			return err
		}
		if scope == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no enclosing scope found")
			return nil
		}

		calls, err := repo.FindMethodCalls(scope.PrimaryLocation())
		if err != nil {
			return err
		}
		for _, c := range calls {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %s\n", c.Location.StartLine, c.Location.StartColumn, c.CalleeName)
		}
		return nil
	},
}
