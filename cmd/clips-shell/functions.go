package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	clipsruntime "github.com/neutronhq/clips-runtime"
)

// NewFunctionsCommand creates the function table listing command.
func NewFunctionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "functions",
		Short:         "List the functions callable on a fresh instance",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctions(rootOpts, cmd)
		},
	}

	return cmd
}

func runFunctions(opts *RootOptions, cmd *cobra.Command) error {
	env, err := opts.newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARITY\tARGUMENTS")
	for _, fn := range env.Functions() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name, describeArity(fn), describeKinds(fn))
	}
	return w.Flush()
}

// describeArity renders the accepted argument count: "2", "1..3" or "2+".
func describeArity(fn clipsruntime.Function) string {
	switch {
	case fn.MaxArgs < 0:
		return strconv.Itoa(fn.MinArgs) + "+"
	case fn.MinArgs == fn.MaxArgs:
		return strconv.Itoa(fn.MinArgs)
	default:
		return fmt.Sprintf("%d..%d", fn.MinArgs, fn.MaxArgs)
	}
}

// describeKinds renders the positional constraints; the last one repeats
// for variadic functions.
func describeKinds(fn clipsruntime.Function) string {
	if len(fn.ArgKinds) == 0 {
		return "ANY"
	}
	parts := make([]string, len(fn.ArgKinds))
	for i, k := range fn.ArgKinds {
		parts[i] = k.String()
	}
	s := strings.Join(parts, ", ")
	if fn.MaxArgs < 0 || fn.MaxArgs > len(fn.ArgKinds) {
		s += ", ..."
	}
	return s
}
