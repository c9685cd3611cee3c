package corrector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
	"github.com/arthur-debert/cmdcorrect/pkg/journal"
	"github.com/arthur-debert/cmdcorrect/pkg/sources"
	"github.com/arthur-debert/cmdcorrect/pkg/testutil"
)

func TestUndo_RestoresLastBatch(t *testing.T) {
	dir := t.TempDir()
	original := "gamemode 1 @a\nsay hi\n"
	text := testutil.CreateFile(t, dir, "f.txt", original)
	world := testutil.CreateFile(t, dir, "world.xml", worldXML)
	j := journal.New(filepath.Join(dir, "journal.toml"))

	_, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{text, world}),
		Rules:   testSet(t),
		Journal: j,
	})
	require.NoError(t, err)
	require.NotEqual(t, original, testutil.ReadFile(t, text))

	report, err := Undo(j, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Restored)
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, original, testutil.ReadFile(t, text))
	assert.Contains(t, testutil.ReadFile(t, world), ">gamemode c @p<")

	_, err = Undo(j, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalEmpty))
}

func TestUndo_SkipsEditedCommands(t *testing.T) {
	dir := t.TempDir()
	text := testutil.CreateFile(t, dir, "f.txt", "gamemode 1 @a\ngamemode 0 @a\n")
	j := journal.New(filepath.Join(dir, "journal.toml"))

	_, err := Run(context.Background(), Options{
		Sources: sources.OpenAll([]string{text}),
		Rules:   testSet(t),
		Journal: j,
	})
	require.NoError(t, err)

	testutil.CreateFile(t, dir, "f.txt", "gamemode creative @p\ngamemode survival @a\n")

	report, err := Undo(j, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Restored)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "gamemode creative @p", report.Conflicts[0].Current)
	assert.Equal(t, "gamemode creative @p\ngamemode 0 @a\n", testutil.ReadFile(t, text))
}

func TestUndo_MissingSourceKeepsBatch(t *testing.T) {
	dir := t.TempDir()
	j := journal.New(filepath.Join(dir, "journal.toml"))
	_, err := j.Record([]journal.Correction{{Source: filepath.Join(dir, "gone.txt"), Before: "a", After: "b"}})
	require.NoError(t, err)

	report, err := Undo(j, nil)
	require.Error(t, err)
	require.Len(t, report.Errors, 1)

	_, err = j.Last()
	assert.NoError(t, err)
}
