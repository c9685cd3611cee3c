package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/pkg/corrector"
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/journal"
)

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "undo",
		Short:   MsgUndoShort,
		Long:    MsgUndoLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if !e.cfg.Journal.Enabled {
				return errors.New(errors.ErrJournalEmpty, MsgJournalDisabled)
			}

			report, err := corrector.Undo(journal.New(e.cfg.Journal.Path), nil)
			if report != nil {
				if perr := e.printer.Undo(report); perr != nil {
					return perr
				}
			}
			return err
		},
	}
}
