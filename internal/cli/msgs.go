package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rewrite stored game commands with correction rules"
	MsgApplyShort      = "Apply the configured rules to command files"
	MsgTryShort        = "Try a rule given on the command line"
	MsgCheckShort      = "Compile the configured rules and report problems"
	MsgExplainShort    = "Show how a pattern compiles"
	MsgUndoShort       = "Revert the last apply run"
	MsgConfigShort     = "Print the default configuration"
	MsgConfigLong      = "Print the default configuration with every value commented out, ready to be saved as cmdcorrect.toml."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgRulesRejected   = "[warning]%d of %d rules were rejected, run [code]cmdcorrect check[/code] for details[/warning]"
	MsgWatching        = "[muted]Watching %d rule files, press Ctrl+C to stop[/muted]"
	MsgConfigLoaded    = "[muted]Config: %s[/muted]"
	MsgVersionFormat   = "cmdcorrect %s (commit %s, built %s)\n"
	MsgJournalDisabled = "the journal is disabled, nothing to undo"

	// Error messages
	MsgErrNoRuleFiles = "no rule files configured, set rules.files or pass --rules"
	MsgErrNoRules     = "no usable rules"
	MsgErrNoSources   = "no command files given"
	MsgErrRuleArgs    = "expected a pattern and a template, optionally followed by an assertion"
	MsgErrRuleUnknown = "no configured rule named %q"
	MsgErrSources     = "%d of %d files could not be processed"
	MsgErrUndo        = "undo was incomplete"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without writing them"
	MsgFlagConfig    = "Read this config file after the user and project ones"
	MsgFlagFormat    = "Output format: auto, text, plain, json or yaml"
	MsgFlagRules     = "Rule file to load in addition to rules.files (repeatable)"
	MsgFlagNoRules   = "Ignore rules.files from the configuration"
	MsgFlagWorkers   = "Number of commands rewritten concurrently"
	MsgFlagSubject   = "Command to apply the rule to"
	MsgFlagWatch     = "Check again whenever a rule file changes"
	MsgFlagRuleName  = "Explain the configured rule with this name"
	MsgFlagTemplate  = "Template to attach to the pattern"
	MsgFlagAssertion = "Assertion to attach to the pattern"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/try-long.txt
	msgTryLongRaw string
	MsgTryLong    = strings.TrimSpace(msgTryLongRaw)

	//go:embed msgs/try-example.txt
	msgTryExampleRaw string
	MsgTryExample    = strings.TrimRight(msgTryExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/explain-long.txt
	msgExplainLongRaw string
	MsgExplainLong    = strings.TrimSpace(msgExplainLongRaw)

	//go:embed msgs/explain-example.txt
	msgExplainExampleRaw string
	MsgExplainExample    = strings.TrimRight(msgExplainExampleRaw, "\n")

	//go:embed msgs/undo-long.txt
	msgUndoLongRaw string
	MsgUndoLong    = strings.TrimSpace(msgUndoLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
