package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fin-sh/fin/app"
	"github.com/fin-sh/fin/config"
	sentrypkg "github.com/fin-sh/fin/internal/sentry"
	"github.com/fin-sh/fin/log"
	"github.com/fin-sh/fin/shell"
	"github.com/fin-sh/fin/tasklog"
)

var (
	version = "0.1.0"

	rootCmd = &cobra.Command{
		Use:   "fin",
		Short: "fin - a file manager that lives next to your shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			bridge, err := shell.NewBridge()
			if err != nil {
				return fmt.Errorf("failed to set up shell bridge: %w", err)
			}
			defer bridge.Cleanup()

			taskLog, err := tasklog.Open(taskLogPath())
			if err != nil {
				return fmt.Errorf("failed to open task history: %w", err)
			}
			defer taskLog.Close()

			return app.Run(ctx, cfg, bridge, taskLog)
		},
	}

	pidCmd = &cobra.Command{
		Use:    "pid <pid>",
		Short:  "Announce the shell's process id to the running fin instance",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid pid %q: %w", args[0], err)
			}
			return shell.SendEvent(shell.Event{Kind: shell.KindPid, Pid: pid})
		},
	}

	cdCmd = &cobra.Command{
		Use:    "cd <dir>",
		Short:  "Announce a working directory change to the running fin instance",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %q: %w", args[0], err)
			}
			return shell.SendEvent(shell.Event{Kind: shell.KindCd, Dir: dir})
		},
	}

	exitCmd = &cobra.Command{
		Use:    "exit",
		Short:  "Announce that the shell session ended",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.SendEvent(shell.Event{Kind: shell.KindExit})
		},
	}

	taskCmd = &cobra.Command{
		Use:   "task [--] <command...>",
		Short: "Hand a command to the running fin instance to run in the background",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			return shell.SendEvent(shell.Event{
				Kind:     shell.KindTask,
				Command:  command,
				Rendered: command,
			})
		},
	}

	getCmdCmd = &cobra.Command{
		Use:    "get-cmd",
		Short:  "Read one pending command from the running fin instance",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := shell.ReceiveCommand()
			if err != nil {
				return err
			}
			fmt.Print(command)
			return nil
		},
	}

	initCmd = &cobra.Command{
		Use:   "init <shell>",
		Short: "Print the shell integration script (fish or zsh)",
		Long: `Print the integration script for the given shell. Add to your config:

  fish:  fin init fish | source
  zsh:   eval "$(fin init zsh)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.InitScript(args[0])
			if err != nil {
				return err
			}
			fmt.Print(script)
			return nil
		},
	}

	historyLimit int
	historyCmd   = &cobra.Command{
		Use:   "history",
		Short: "Show recently supervised background tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			taskLog, err := tasklog.Open(taskLogPath())
			if err != nil {
				return fmt.Errorf("failed to open task history: %w", err)
			}
			defer taskLog.Close()

			entries, err := taskLog.Recent(historyLimit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "running"
				if e.Finished() {
					if e.ExitCode == 0 {
						status = "ok"
					} else {
						status = fmt.Sprintf("exit %d", e.ExitCode)
					}
				}
				fmt.Printf("%s  %-8s  %s\n", e.StartedAt.Local().Format("2006-01-02 15:04:05"), status, e.Command)
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("Open methods: %s\n", filepath.Join(configDir, config.OpenMethodsFileName))
			fmt.Printf("Task history: %s\n", taskLogPath())
			fmt.Printf("Event fifo: %s\nCommand fifo: %s\n", shell.EventsPath, shell.CommandsPath)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fin",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fin version %s\n", version)
		},
	}
)

func taskLogPath() string {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "fin-tasks.db")
	}
	return filepath.Join(configDir, "tasks.db")
}

func init() {
	rootCmd.Flags().SortFlags = false
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of entries to show")

	rootCmd.AddCommand(pidCmd)
	rootCmd.AddCommand(cdCmd)
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(getCmdCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
