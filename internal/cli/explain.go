package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/output"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
)

func newExplainCmd() *cobra.Command {
	var (
		ruleName  string
		template  string
		assertion string
		subject   string
	)

	cmd := &cobra.Command{
		Use:     "explain [pattern]",
		Short:   MsgExplainShort,
		Long:    MsgExplainLong,
		Example: MsgExplainExample,
		GroupID: "core",
		Args: func(cmd *cobra.Command, args []string) error {
			if ruleName != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			var rule rules.Rule
			if ruleName != "" {
				rule, err = e.findRule(ruleName)
			} else {
				rule, err = e.compileOne(rules.Definition{
					Name:      "pattern",
					Pattern:   args[0],
					Template:  template,
					Assertion: assertion,
					Origin:    "command line",
				})
			}
			if err != nil {
				return err
			}

			return e.printer.Explain(output.Explain(rule, subject))
		},
	}

	cmd.Flags().StringVar(&ruleName, "rule", "", MsgFlagRuleName)
	cmd.Flags().StringVarP(&template, "template", "t", "", MsgFlagTemplate)
	cmd.Flags().StringVarP(&assertion, "assertion", "a", "", MsgFlagAssertion)
	cmd.Flags().StringVarP(&subject, "subject", "s", "", MsgFlagSubject)
	return cmd
}

// compileOne compiles a single definition or returns why it was rejected
func (e *env) compileOne(def rules.Definition) (rules.Rule, error) {
	set, rejected := rules.Compile([]rules.Definition{def}, e.compileOptions())
	if len(rejected) > 0 {
		return rules.Rule{}, rejected[0].Err
	}
	return set.Rules()[0], nil
}

// findRule looks a rule up by name in the configured rule files. A rejected
// rule reports its compile error.
func (e *env) findRule(name string) (rules.Rule, error) {
	set, rejected, err := e.loadRules(e.cfg.Rules.Files)
	if err != nil {
		return rules.Rule{}, err
	}
	for _, r := range set.Rules() {
		if r.Name == name {
			return r, nil
		}
	}
	for _, rej := range rejected {
		if rej.Definition.Name == name {
			return rules.Rule{}, rej.Err
		}
	}
	return rules.Rule{}, errors.Newf(errors.ErrNotFound, MsgErrRuleUnknown, name)
}
