package corrector

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/journal"
	"github.com/arthur-debert/cmdcorrect/pkg/rules"
	"github.com/arthur-debert/cmdcorrect/pkg/sources"
	"github.com/arthur-debert/cmdcorrect/pkg/testutil"
)

func testSet(t *testing.T) *rules.Set {
	t.Helper()
	set, rejected := rules.Compile([]rules.Definition{
		{Name: "gamemode", Pattern: `gamemode ;>("0"|"s"|"survival")|("1"|"c"|"creative")<;`, Template: "gamemode ;:(1)"},
		{Name: "setblock", Pattern: `setblock ;?(.*)`, Template: "setblock ;:(1);!(check block state)"},
	}, rules.Options{})
	require.Empty(t, rejected)
	return set
}

const worldXML = `<world>
  <commandblock x="1" y="2" z="3">gamemode c @p</commandblock>
  <commandblock x="4" y="5" z="6">setblock ~ ~1 ~ stone</commandblock>
</world>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	text := testutil.CreateFile(t, dir, "tick.mcfunction", "# start\ngamemode 1 @a\nsay hi\ngamemode survival @a\n")
	world := testutil.CreateFile(t, dir, "world.xml", worldXML)
	j := journal.New(filepath.Join(dir, "journal.toml"))

	report, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{text, world}),
		Rules:   testSet(t),
		Workers: 3,
		Journal: j,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Sources)
	assert.Equal(t, 5, report.Found)
	assert.Equal(t, 2, report.Changed)
	assert.Equal(t, 1, report.Notified)
	assert.Equal(t, []RuleCount{{Rule: "gamemode", Count: 2}}, report.PerRule)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.Batch)

	require.Len(t, report.Findings, 3)
	assert.Equal(t, "line 2", report.Findings[0].Location)
	assert.Equal(t, "gamemode creative @a", report.Findings[0].Text)
	assert.Equal(t, "1 2 3", report.Findings[1].Location)
	assert.Equal(t, "4 5 6", report.Findings[2].Location)
	assert.False(t, report.Findings[2].Changed)
	assert.Equal(t, "check block state", report.Findings[2].Notifications[0].Message)

	assert.Equal(t, "# start\ngamemode creative @a\nsay hi\ngamemode survival @a\n", testutil.ReadFile(t, text))
	assert.Contains(t, testutil.ReadFile(t, world), ">gamemode creative @p<")

	batch, err := j.Last()
	require.NoError(t, err)
	assert.Len(t, batch.Corrections, 2)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	text := testutil.CreateFile(t, dir, "f.txt", "gamemode 0 @a\n")
	j := journal.New(filepath.Join(dir, "journal.toml"))

	report, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{text}),
		Rules:   testSet(t),
		DryRun:  true,
		Journal: j,
	})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Changed)
	assert.Empty(t, report.Batch)
	assert.Equal(t, "gamemode 0 @a\n", testutil.ReadFile(t, text))

	_, err = j.Last()
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalEmpty))
}

func TestRun_UnreadableSourceIsReported(t *testing.T) {
	dir := t.TempDir()
	good := testutil.CreateFile(t, dir, "good.txt", "gamemode s @a\n")

	report, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{filepath.Join(dir, "missing.txt"), good}),
		Rules:   testSet(t),
	})
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, filepath.Join(dir, "missing.txt"), report.Errors[0].Source)
	assert.True(t, errors.IsErrorCode(report.Errors[0].Err, errors.ErrSourceRead))
	assert.Equal(t, 1, report.Changed)
	assert.Equal(t, "gamemode survival @a\n", testutil.ReadFile(t, good))
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	text := testutil.CreateFile(t, dir, "f.txt", "gamemode 0 @a\ngamemode 1 @a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{
		Sources: sources.OpenAll([]string{text}),
		Rules:   testSet(t),
		Workers: 1,
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "gamemode 0 @a\ngamemode 1 @a\n", testutil.ReadFile(t, text))
}

func TestRun_PreservesOrderAcrossWorkers(t *testing.T) {
	dir := t.TempDir()
	content := ""
	for i := 0; i < 50; i++ {
		content += "gamemode c @a\nsay x\n"
	}
	text := testutil.CreateFile(t, dir, "many.txt", content)

	report, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{text}),
		Rules:   testSet(t),
		Workers: 8,
		DryRun:  true,
	})
	require.NoError(t, err)
	require.Len(t, report.Findings, 50)
	for i, f := range report.Findings {
		assert.Equal(t, "line "+strconv.Itoa(2*i+1), f.Location)
	}
}
