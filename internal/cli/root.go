// Package cli builds the cmdcorrect command tree.
package cli

import (
	"embed"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/internal/topics"
	"github.com/arthur-debert/cmdcorrect/internal/version"
	"github.com/arthur-debert/cmdcorrect/pkg/config"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/notify"
	"github.com/arthur-debert/cmdcorrect/pkg/output"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

//go:embed topics/*.md
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "cmdcorrect",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Bool("dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringP("config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringP("format", "f", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newTryCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newExplainCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	help, err := topics.Load(topicsFS, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   topicRenderer{md: output.NewMarkdownRenderer()},
	})
	if err != nil {
		log.Debug().Err(err).Msg("Help topics unavailable")
	} else {
		help.Install(rootCmd)
	}

	return rootCmd
}

// topicRenderer renders markdown topics with glamour on a terminal
type topicRenderer struct {
	md *output.MarkdownRenderer
}

func (r topicRenderer) Render(content, ext string) string {
	if ext != ".md" || !stdoutIsTerminal() {
		return content
	}
	return r.md.Render(content)
}

// env is the configuration and printers a command runs with
type env struct {
	cfg     *config.Config
	printer *output.Printer
	// stderr receives warnings that must not mix with structured output
	stderr *output.Printer
}

// loadEnv merges the configuration, honoring the global --config and
// --format flags, and builds the printers
func loadEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")
	formatFlag, _ := flags.GetString("format")

	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	opts := config.LoadOptions{WorkDir: workDir, ExplicitPath: configPath}
	if formatFlag != "" {
		opts.Overrides = map[string]interface{}{"output.format": formatFlag}
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	printer, err := output.New(cmd.OutOrStdout(), format)
	if err != nil {
		return nil, err
	}
	stderr, err := output.New(cmd.ErrOrStderr(), format)
	if err != nil {
		return nil, err
	}

	log.Debug().Strs("loaded_from", cfg.LoadedFrom).Str("format", string(printer.Format())).Msg("Configuration loaded")
	return &env{cfg: cfg, printer: printer, stderr: stderr}, nil
}

// compileOptions turns the engine and notify settings into rule options
func (e *env) compileOptions() rules.Options {
	extractor := notify.Extractor{
		Width: e.cfg.Notify.ContextWidth,
		Caret: e.cfg.Notify.Caret,
		Style: style.CaretStyle,
	}
	return rules.Options{MatchTimeout: e.cfg.Engine.MatchTimeout, Extractor: &extractor}
}

// ruleFiles returns the configured rule files followed by extra
func (e *env) ruleFiles(extra []string, skipConfigured bool) []string {
	var files []string
	if !skipConfigured {
		files = append(files, e.cfg.Rules.Files...)
	}
	return append(files, extra...)
}

// loadRules reads and compiles every rule file in order
func (e *env) loadRules(files []string) (*rules.Set, []rules.Rejection, error) {
	defs, err := rules.LoadFiles(files)
	if err != nil {
		return nil, nil, err
	}
	set, rejected := rules.Compile(defs, e.compileOptions())
	return set, rejected, nil
}

// warnRejected tells the user that some rules were left out
func (e *env) warnRejected(set *rules.Set, rejected []rules.Rejection) {
	if len(rejected) == 0 || e.stderr.Format().Structured() {
		return
	}
	_ = e.stderr.Message(fmt.Sprintf(MsgRulesRejected, len(rejected), set.Len()+len(rejected)))
}
