package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/pkg/corrector"
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/journal"
	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/sources"
)

func newApplyCmd() *cobra.Command {
	var (
		extraRules []string
		noConfig   bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:     "apply [files...]",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoSources)
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			files := e.ruleFiles(extraRules, noConfig)
			if len(files) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrNoRuleFiles)
			}
			set, rejected, err := e.loadRules(files)
			if err != nil {
				return err
			}
			e.warnRejected(set, rejected)
			if set.Len() == 0 {
				return errors.New(errors.ErrRuleInvalid, MsgErrNoRules)
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			if !cmd.Flags().Changed("workers") {
				workers = e.cfg.Engine.Workers
			}

			var j *journal.Journal
			if e.cfg.Journal.Enabled {
				j = journal.New(e.cfg.Journal.Path)
			}

			logger := logging.WithFields(map[string]interface{}{
				"files":   args,
				"rules":   set.Len(),
				"dry_run": dryRun,
			})
			logger.Info().Msg("Applying rules")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report, err := corrector.Run(ctx, corrector.Options{
				Sources: sources.OpenAll(args),
				Rules:   set,
				DryRun:  dryRun,
				Workers: workers,
				Journal: j,
			})
			if err != nil {
				return err
			}
			if err := e.printer.Report(report); err != nil {
				return err
			}

			if len(report.Errors) > 0 {
				first := report.Errors[0]
				code := errors.GetErrorCode(first.Err)
				if code == "" {
					code = errors.ErrSourceRead
				}
				return errors.Wrapf(first.Err, code, MsgErrSources, len(report.Errors), report.Sources)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&extraRules, "rules", "r", nil, MsgFlagRules)
	cmd.Flags().BoolVar(&noConfig, "no-config-rules", false, MsgFlagNoRules)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, MsgFlagWorkers)

	return cmd
}
