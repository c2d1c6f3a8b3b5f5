package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/neutronhq/clips-runtime/runtime"
)

const (
	historyFile = ".clips_shell_history"
	prompt      = "clips> "
)

var banner = "clips-shell REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit, :help for commands."

const replHelp = `REPL commands:
  :help       Show this help
  :functions  List callable functions
  :reset      Reset the instance (entities released, gensym restarts)
  :quit       Exit the REPL

Calls are written as (fn args...) or fn args... — one call per line:
  clips> (+ 1 2 3)
  clips> str-cat "order-" 42`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }

// NewReplCommand creates the line-oriented REPL command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repl",
		Short:         "Evaluate calls interactively, one per line",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(rootOpts, cmd)
		},
	}

	return cmd
}

func runRepl(opts *RootOptions, cmd *cobra.Command) error {
	env, err := opts.newEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	// Piped input gets a plain line reader; the editor needs a terminal.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return pipedLoop(env, cmd)
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := replCommand(env, line); quit {
				return nil
			}
			continue
		}

		ln.AppendHistory(line)
		evalLine(env, line)
	}
}

// pipedLoop evaluates stdin line by line without the editor, so the repl
// works under redirection and in scripts.
func pipedLoop(env *runtime.Environment, cmd *cobra.Command) error {
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := replCommand(env, line); quit {
				return nil
			}
			continue
		}
		name, argLine, err := parseCallLine(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		out, err := env.CallString(name, argLine)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		if !out.IsVoid() {
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
		}
	}
	return sc.Err()
}

// replCommand handles one :command line. It reports whether the repl
// should exit.
func replCommand(env *runtime.Environment, line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Println(replHelp)
	case ":functions":
		for _, fn := range env.Functions() {
			fmt.Printf("  %-12s %s  %s\n", fn.Name, describeArity(fn), describeKinds(fn))
		}
	case ":reset":
		env.Reset()
		fmt.Println("instance reset")
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

func evalLine(env *runtime.Environment, line string) {
	name, argLine, err := parseCallLine(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return
	}
	out, err := env.CallString(name, argLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return
	}
	if !out.IsVoid() {
		fmt.Println(green(out.String()))
	}
}

// parseCallLine splits one repl line into the function name and the raw
// argument text. One optional enclosing parenthesis pair is accepted.
func parseCallLine(line string) (name, argLine string, err error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") {
		line = strings.TrimSpace(line[1 : len(line)-1])
	}
	if line == "" {
		return "", "", fmt.Errorf("empty call")
	}
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], line[i+1:], nil
	}
	return line, "", nil
}
