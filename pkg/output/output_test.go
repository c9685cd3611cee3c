package output_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/cmdcorrect/pkg/corrector"
	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/output"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/style"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    output.Format
		wantErr bool
	}{
		{input: "", want: output.FormatAuto},
		{input: "AUTO", want: output.FormatAuto},
		{input: "text", want: output.FormatText},
		{input: "term", want: output.FormatText},
		{input: "plain", want: output.FormatPlain},
		{input: "json", want: output.FormatJSON},
		{input: "yml", want: output.FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := output.ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_NotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, output.FormatPlain, output.DetectFormat(f))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, output.FormatPlain, output.DetectFormat(f))
}

func TestNew_AutoOnBuffer(t *testing.T) {
	p, err := output.New(&bytes.Buffer{}, output.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, output.FormatText, p.Format())
	assert.False(t, p.Format().Structured())
	assert.True(t, output.FormatYAML.Structured())
}

func sampleReport(t *testing.T) *corrector.Report {
	t.Helper()
	set, rejected := rules.Compile([]rules.Definition{
		{Name: "gamemode", Pattern: `gamemode ;>("1"|"c"|"creative")<;`, Template: "gamemode ;:(1)"},
		{Name: "setblock", Pattern: `setblock ;?(.*)`, Template: "setblock ;:(1);!(check block state)"},
	}, rules.Options{})
	require.Empty(t, rejected)

	changed := set.Apply("gamemode c @a[r=5]")
	notified := set.Apply("setblock ~ ~ ~ stone")

	return &corrector.Report{
		Sources:  1,
		Found:    3,
		Changed:  1,
		Notified: 1,
		PerRule:  []corrector.RuleCount{{Rule: "gamemode", Count: 1}},
		Findings: []corrector.Finding{
			{Source: "tick.mcfunction", Location: "line 1", Outcome: changed},
			{Source: "tick.mcfunction", Location: "line 3", Outcome: notified},
		},
		Batch: "20261017-093000-1",
	}
}

func TestPrinter_ReportPlain(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatPlain)
	require.NoError(t, err)

	require.NoError(t, p.Report(sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "tick.mcfunction at line 1")
	assert.Contains(t, out, "gamemode c @a[r=5]")
	assert.Contains(t, out, "gamemode creative @a[r=5]")
	assert.Contains(t, out, "! check block state (setblock)")
	assert.Contains(t, out, "setblock ~ ~ ~ stone>!<")
	assert.Contains(t, out, "1 / 3 commands were modified with 1 modifications")
	assert.Contains(t, out, "Undo with cmdcorrect undo")
	assert.NotContains(t, out, "[title]")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinter_ReportStyled(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatText)
	require.NoError(t, err)

	require.NoError(t, p.Report(sampleReport(t)))
	assert.NotContains(t, buf.String(), "[title]")
	assert.Contains(t, buf.String(), "modifications")
}

func TestPrinter_ReportDryRun(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatPlain)
	require.NoError(t, err)

	r := sampleReport(t)
	r.DryRun = true
	require.NoError(t, p.Report(r))
	assert.Contains(t, buf.String(), "Dry run, nothing was written")
	assert.NotContains(t, buf.String(), "Undo with")
}

func TestPrinter_ReportJSON(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatJSON)
	require.NoError(t, err)

	require.NoError(t, p.Report(sampleReport(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 1, decoded["changed"])

	findings := decoded["findings"].([]interface{})
	first := findings[0].(map[string]interface{})
	assert.Equal(t, "gamemode creative @a[r=5]", first["text"])
	assert.Equal(t, "line 1", first["location"])
}

func TestPrinter_OutcomeYAML(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatYAML)
	require.NoError(t, err)

	report := sampleReport(t)
	require.NoError(t, p.Outcome(report.Findings[1].Outcome))

	var decoded struct {
		Text          string `yaml:"text"`
		Notifications []struct {
			Rule    string `yaml:"rule"`
			Message string `yaml:"message"`
		} `yaml:"notifications"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "setblock ~ ~ ~ stone", decoded.Text)
	require.Len(t, decoded.Notifications, 1)
	assert.Equal(t, "setblock", decoded.Notifications[0].Rule)
	assert.Equal(t, "check block state", decoded.Notifications[0].Message)
}

func TestPrinter_OutcomePlain(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatPlain)
	require.NoError(t, err)

	report := sampleReport(t)
	require.NoError(t, p.Outcome(report.Findings[0].Outcome))
	assert.True(t, strings.HasPrefix(buf.String(), "changed"))
	assert.Contains(t, buf.String(), "gamemode creative @a[r=5]")
}

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, style.StatusChanged, output.OutcomeStatus(rules.Outcome{Changed: true}))
	assert.Equal(t, style.StatusNotified, output.OutcomeStatus(rules.Outcome{Notifications: []rules.Notice{{}}}))
	assert.Equal(t, style.StatusUnchanged, output.OutcomeStatus(rules.Outcome{}))
}

func TestPrinter_Undo(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatPlain)
	require.NoError(t, err)

	r := &corrector.UndoReport{Batch: "b-1", Restored: 2}
	r.Conflicts = append(r.Conflicts, corrector.Conflict{Current: "say edited"})
	r.Conflicts[0].Source = "f.txt"
	r.Conflicts[0].Location = "line 4"

	require.NoError(t, p.Undo(r))
	assert.Contains(t, buf.String(), "Restored 2 commands from batch b-1")
	assert.Contains(t, buf.String(), "f.txt at line 4 was edited since")
	assert.Contains(t, buf.String(), "say edited")
}

func TestPrinter_MessageAndError(t *testing.T) {
	var buf bytes.Buffer
	p, err := output.New(&buf, output.FormatJSON)
	require.NoError(t, err)

	require.NoError(t, p.Error(errors.New(errors.ErrJournalEmpty, "nothing to undo")))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "JOURNAL_EMPTY", decoded["code"])

	buf.Reset()
	plain, err := output.New(&buf, output.FormatPlain)
	require.NoError(t, err)
	require.NoError(t, plain.Message("[title]done[/title]"))
	assert.Equal(t, "done\n", buf.String())
}
