package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/pkg/logging"
	"github.com/arthur-debert/cmdcorrect/pkg/output"
)

func newCheckCmd() *cobra.Command {
	var (
		extraRules []string
		noConfig   bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			files := e.ruleFiles(extraRules, noConfig)

			check := func() error {
				defer logging.LogDuration(time.Now(), "check")
				set, rejected, err := e.loadRules(files)
				if err != nil {
					return err
				}
				return e.printer.Check(output.CheckRows(set, rejected))
			}

			if !watch {
				return check()
			}

			// a broken file is reported and watched like any other
			if err := check(); err != nil {
				_ = e.stderr.Error(err)
			}
			_ = e.stderr.Message(fmt.Sprintf(MsgWatching, len(files)))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchFiles(ctx, files, func() {
				if err := check(); err != nil {
					_ = e.stderr.Error(err)
				}
			})
		},
	}

	cmd.Flags().StringArrayVarP(&extraRules, "rules", "r", nil, MsgFlagRules)
	cmd.Flags().BoolVar(&noConfig, "no-config-rules", false, MsgFlagNoRules)
	cmd.Flags().BoolVar(&watch, "watch", false, MsgFlagWatch)
	return cmd
}
