package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
)

func newTryCmd() *cobra.Command {
	var subjects []string

	cmd := &cobra.Command{
		Use:     "try <pattern> <template> [assertion]",
		Short:   MsgTryShort,
		Long:    MsgTryLong,
		Example: MsgTryExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ok := rules.ParseArgs(args)
			if !ok {
				return errors.New(errors.ErrInvalidInput, MsgErrRuleArgs).WithDetail("args", args)
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			set, rejected := rules.Compile([]rules.Definition{def}, e.compileOptions())
			if len(rejected) > 0 {
				return rejected[0].Err
			}

			if len(subjects) == 0 {
				subjects, err = readLines(cmd)
				if err != nil {
					return err
				}
			}
			for _, s := range subjects {
				if err := e.printer.Outcome(set.Apply(s)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&subjects, "subject", "s", nil, MsgFlagSubject)
	return cmd
}

// readLines reads the non blank lines of the command's input
func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to read commands from input")
	}
	return lines, nil
}
