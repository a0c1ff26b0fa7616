package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tasktaskrevolution/internal/appconfig"
	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/logging"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/ttrerr"
	"tasktaskrevolution/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "ttr",
	Short: "TaskTaskRevolution: a file-backed project management engine",
	Long: `TaskTaskRevolution tracks companies, projects, tasks, and resources as
plain YAML files in a workspace directory, with no server and no database.
Core concepts:
- Workspace: the directory holding config.yaml and every company/project/task/resource file.
- Company / Project / Task / Resource: the four entity kinds, each with its own status lifecycle.
- Dependencies: tasks link Finish-to-Start; the engine computes schedules from the resulting DAG.
- Validation: a rule engine flags referential, temporal, and resource-policy problems before you build or report.
- Build: renders a static HTML site and Gantt charts from the current workspace state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(func() { appconfig.Init() })
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(ttrerr.ExitCode(err))
	}
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "workspace directory (default: nearest config.yaml)")
	rootCmd.PersistentFlags().String("config", "", "alternate config.yaml path")
	rootCmd.PersistentFlags().String("log", "", "log level (off|error|warn|info|debug|trace)")
	rootCmd.PersistentFlags().Bool("local-build", false, "build output with relative links for file:// preview")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-error output")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
	_ = viper.BindPFlag("local-build", rootCmd.PersistentFlags().Lookup("local-build"))
}

func registerCommands() {
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(linkCmd())
	rootCmd.AddCommand(unlinkCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(resourceCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(completionsCmd())
}

// workspaceRoot resolves the effective workspace root for a command
// invocation: the explicit --workspace flag if set, otherwise the
// current directory (further resolution to a specific scope happens in
// internal/ctx when a command needs it).
func workspaceRoot() string {
	if ws := appconfig.Workspace(); ws != "" {
		return ws
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func setupLogging() {
	level := appconfig.LogLevel()
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = "debug"
	}
	if q, _ := rootCmd.PersistentFlags().GetBool("quiet"); q {
		level = "error"
	}
	logging.Configure(level, appconfig.NoColor())
}

// withLock acquires the workspace lock for the command's lifetime, runs
// fn, and releases the lock on the way out, mirroring §5's "a command
// acquires an advisory lock ... for its entire lifetime."
func withLock(root string, mode lock.Mode, fn func(o *usecase.Orchestrator) error) error {
	setupLogging()
	l, err := lock.Acquire(root, mode)
	if err != nil {
		return err
	}
	defer l.Release()
	o := usecase.New(repo.New(root))
	return fn(o)
}
