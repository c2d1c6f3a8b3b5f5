package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCallCommand creates the one-shot call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <function> [args...]",
		Short: "Call one engine function and print the result",
		Long: `Call one engine function. Arguments convert by lexical shape:
double-quoted tokens become strings, integer and float forms become
numbers, everything else becomes a symbol.

Example:
  clips-shell call + 1 2 3
  clips-shell call str-cat '"order-"' 42`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(rootOpts, cmd, args[0], args[1:])
		},
	}

	return cmd
}

func runCall(opts *RootOptions, cmd *cobra.Command, name string, args []string) error {
	env, err := opts.newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	out, err := env.CallString(name, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !out.IsVoid() {
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
	}
	return nil
}
