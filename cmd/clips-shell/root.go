package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/neutronhq/clips-runtime/runtime"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	Verbose bool
}

// Logger builds the process logger: quiet by default, development output
// at debug level with --verbose.
func (o *RootOptions) Logger() (*zap.Logger, error) {
	if o.Verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// newEnvironment builds the owned environment a subcommand works against.
func (o *RootOptions) newEnvironment() (*runtime.Environment, error) {
	log, err := o.Logger()
	if err != nil {
		return nil, err
	}
	return runtime.New(runtime.WithLogger(log))
}

// NewRootCommand creates the root command for the clips shell.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "clips-shell",
		Short: "Interactive shell for the in-process rule engine",
		Long: `clips-shell drives an in-process engine instance: call functions
one-shot, browse the function table, or work interactively in a REPL
or a full-screen TUI.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose engine logging")

	cmd.AddCommand(NewCallCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}
