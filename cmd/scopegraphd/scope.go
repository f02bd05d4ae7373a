package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/viant/scopegraph/graph"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <root> <file> <line>",
	Short: "Print the innermost scope enclosing a file:line location",
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

		loc := graph.Location{FilePath: file, StartLine: line}
		scope, err := repo.FindScope(loc)
		if err != nil {
			return err
		}
		if scope == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no enclosing scope found")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", scope.Kind, scope.QualifiedName, scope.Language)
		return nil
	},
}
