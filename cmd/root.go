/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/goinject/internal/ops"
	"github.com/fulmenhq/goinject/pkg/buildinfo"
	"github.com/fulmenhq/goinject/pkg/exitcode"
	"github.com/fulmenhq/goinject/pkg/inject"
	"github.com/fulmenhq/goinject/pkg/logger"
	"github.com/fulmenhq/goinject/pkg/manifest"
)

// newRootCommand creates a fresh root command instance.
// Tests use it to build isolated command trees.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goinject",
		Short: "Materialize a declarative file mapping into a target repository",
		Long: `Goinject writes the files declared in a versioned file mapping into a target
directory tree. Files are written in a fixed category order, identical files
are skipped, and every outcome is reported.

Examples:
   goinject inject --target ../service           # Inject the default mapping
   goinject inject --dry-run --filter-mode minimal
   goinject plan --mapping mapping.yaml           # Show the ordered plan
   goinject classify --target ../service          # Show the detected repository type
   goinject validate mapping.json                 # Strict schema check`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Run without making changes (same as --dry-run)")
	cmd.PersistentFlags().String("config", "", "Config file (default .goinject.yaml in the working directory or goinject home)")

	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("goinject {{.Version}}\n")

	// Grouped help by command group
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c != c.Root() {
			c.Println(c.UsageString())
			return
		}
		reg := ops.GetRegistry()
		counts := reg.ListGroups()
		c.Println(c.Long)
		c.Println()
		for _, group := range ops.Groups {
			if counts[group] == 0 {
				continue
			}
			c.Printf("%s:\n", group.Title())
			for _, r := range reg.GetCommandsByGroup(group) {
				c.Printf("  %-12s %s\n", r.Name, r.Description)
			}
			c.Println()
		}
		c.Println("Flags:")
		c.Print(c.LocalFlags().FlagUsages())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newInjectCommand())
	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newClassifyCommand())
	cmd.AddCommand(newVersionCommand())
}

// commandGroups classifies subcommands for the help screen
var commandGroups = map[string]ops.CommandGroup{
	"inject":   ops.GroupInject,
	"plan":     ops.GroupInject,
	"validate": ops.GroupInspect,
	"classify": ops.GroupInspect,
	"version":  ops.GroupSupport,
}

// registerGroups records the root's subcommands in the ops registry
func registerGroups(root *cobra.Command) {
	for _, c := range root.Commands() {
		group, ok := commandGroups[c.Name()]
		if !ok {
			continue
		}
		if err := ops.RegisterCommand(c.Name(), group, c, c.Short); err != nil {
			panic(fmt.Sprintf("Failed to register %s command: %v", c.Name(), err))
		}
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// exitError carries a process exit code through cobra's error return
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeFor maps a command error to a process exit code
func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var le *manifest.LoadError
	switch {
	case errors.As(err, &le):
		return exitcode.ConfigError
	case errors.Is(err, inject.ErrTargetMissing):
		return exitcode.FileSystemError
	default:
		return exitcode.GeneralError
	}
}

// Execute runs the root command and exits with the mapped code on failure.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := exitCodeFor(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}
}

func init() {
	registerSubcommands(rootCmd)
	registerGroups(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "goinject",
		NoOp:      noOp,
	}

	if err := logger.Initialize(config); err != nil {
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}
