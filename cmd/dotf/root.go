package dotf

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dotf/internal/version"
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/filesystem"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/paths"
	"github.com/arthur-debert/dotf/pkg/prompt"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	logLevel   string
	configPath string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "dotf",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.logLevel != "" {
				if err := logging.SetupLoggerWithLevel(g.logLevel); err != nil {
					return err
				}
			} else {
				logging.SetupLogger(g.verbosity)
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		// No subcommand shows the full status
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := loadEnv(cmd, g)
			if err != nil || !ok {
				return err
			}
			_, err = commands.Status(env, commands.StatusOptions{})
			return err
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log", "", MsgFlagLog)
	rootCmd.PersistentFlags().Lookup("log").NoOptDefVal = "info"
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", MsgFlagConfig)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newDiffCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newEditCmd(g))
	rootCmd.AddCommand(newGitCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// initPaths resolves the process-wide paths
func initPaths() (*paths.Paths, error) {
	p, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	return p, nil
}

// findConfig locates the configuration file. When none exists a starter
// one pointing at the current directory is written, a notice printed,
// and ok is false.
func findConfig(out io.Writer, p *paths.Paths, g *globalOptions) (path string, ok bool, err error) {
	path, found, err := p.FindConfig(g.configPath)
	if err != nil {
		return "", false, err
	}
	if found {
		return path, true, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, err
	}
	if err := config.Bootstrap(path, cwd); err != nil {
		return "", false, err
	}
	fmt.Fprintf(out, MsgBootstrapped, p.Display(path))
	return path, false, nil
}

// loadEnv loads the configuration and builds the command environment.
// ok is false when a starter configuration was just written.
func loadEnv(cmd *cobra.Command, g *globalOptions) (commands.Env, bool, error) {
	p, err := initPaths()
	if err != nil {
		return commands.Env{}, false, err
	}

	path, ok, err := findConfig(cmd.OutOrStdout(), p, g)
	if err != nil || !ok {
		return commands.Env{}, false, err
	}

	cfg, err := config.Load(path, p)
	if err != nil {
		return commands.Env{}, false, fmt.Errorf(MsgErrLoadConfig, err)
	}

	log.Debug().Str("home", p.Home()).Str("repository", cfg.Repository).Msg("Environment ready")

	return commands.Env{
		Config:   cfg,
		Home:     p.Home(),
		FS:       filesystem.NewOS(),
		Output:   style.NewOutput(cmd.OutOrStdout()),
		Prompter: prompt.NewTerminal(),
		Runner:   newRunner(cmd),
	}, true, nil
}

func newRunner(cmd *cobra.Command) *runner.ExecRunner {
	r := runner.New()
	r.Stdin = cmd.InOrStdin()
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = cmd.ErrOrStderr()
	return r
}
