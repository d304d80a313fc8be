package toastctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"toastd/pkg/types"
)

// Config carries persistent flags shared by every subcommand.
type Config struct {
	Server  string
	Timeout time.Duration
	LogLvl  string
}

const defaultServer = "http://127.0.0.1:8080"

// DefaultConfig reads TOASTCTL_* environment defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:  envStr("TOASTCTL_SERVER", defaultServer),
		Timeout: envDuration("TOASTCTL_TIMEOUT", 5*time.Second),
		LogLvl:  envStr("TOASTCTL_LOG_LEVEL", "info"),
	}
}

// buildRootCmdWith constructs the command tree. Results are printed to out.
func buildRootCmdWith(cfg *Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "toastctl",
		Short:         "Drive and inspect a running toastd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().StringVar(&cfg.Server, "server", cfg.Server, "toastd base URL (defaults TOASTCTL_SERVER or "+defaultServer+")")
	root.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout")
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults TOASTCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		SetLogLevel(cfg.LogLvl)
	}
	client := func() *Client { return NewClient(cfg.Server, cfg.Timeout) }

	statusCmd := &cobra.Command{Use: "status", Short: "Show listener state and counters", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client().Status(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(out, st)
	}}
	startCmd := &cobra.Command{Use: "start", Short: "Start the toast listener", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client().Start(cmd.Context())
		if err != nil {
			return err
		}
		info("[toast] listener started")
		return printJSON(out, st)
	}}
	stopCmd := &cobra.Command{Use: "stop", Short: "Stop the toast listener", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client().Stop(cmd.Context())
		if err != nil {
			return err
		}
		info("[toast] listener stopped")
		return printJSON(out, st)
	}}

	var wait time.Duration
	var strict bool
	toastCmd := &cobra.Command{
		Use:     "toast",
		Short:   "Print the current toast, one fragment per line",
		Example: "  toastctl toast\n  toastctl toast --wait 3s --strict",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				resp types.ToastResponse
				err  error
			)
			if wait > 0 {
				ctx, cancel := context.WithTimeout(cmd.Context(), wait)
				defer cancel()
				resp, err = client().WaitToast(ctx, strict, 0)
			} else {
				resp, err = client().Toast(cmd.Context(), strict)
			}
			if err != nil {
				return err
			}
			if !resp.Listening {
				warn("[toast] listener is not started")
			}
			for _, m := range resp.Messages {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}
	toastCmd.Flags().DurationVar(&wait, "wait", 0, "Poll until a toast appears or the duration elapses")
	toastCmd.Flags().BoolVar(&strict, "strict", false, "Fail when the listener is not started")

	var ev types.AccessibilityEvent
	emitCmd := &cobra.Command{
		Use:     "emit",
		Short:   "Send one accessibility event",
		Example: "  toastctl emit --text Saved\n  toastctl emit --type view_clicked --package com.example",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ack, err := client().Emit(cmd.Context(), ev)
			if err != nil {
				return err
			}
			return printJSON(out, ack)
		},
	}
	emitCmd.Flags().StringVar(&ev.ID, "id", "", "Event id (generated by the server when empty)")
	emitCmd.Flags().StringVar(&ev.Type, "type", "notification_state_changed", "Event type name or number")
	emitCmd.Flags().StringArrayVar(&ev.Text, "text", nil, "Text fragment (repeatable)")
	emitCmd.Flags().StringVar(&ev.PackageName, "package", "", "Source package name")
	emitCmd.Flags().StringVar(&ev.ClassName, "class", "", "Source class name")

	root.AddCommand(statusCmd, startCmd, stopCmd, toastCmd, emitCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// MainWithArgs runs the CLI and returns a process exit code: 0 on success,
// 2 when no command was given, 1 on any error.
func MainWithArgs(args []string) int {
	return mainWithArgs(args, DefaultConfig(), os.Stdout, os.Stderr)
}

func mainWithArgs(args []string, cfg *Config, out, errOut io.Writer) int {
	root := buildRootCmdWith(cfg, out)
	if len(args) == 0 {
		root.SetOut(errOut)
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(errOut, err.Error())
		return 1
	}
	return 0
}
