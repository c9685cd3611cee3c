package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

func newJournal(t *testing.T) *Journal {
	t.Helper()
	j := New(filepath.Join(t.TempDir(), "state", "journal.toml"))
	fixed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }
	return j
}

func TestJournal_EmptyJournal(t *testing.T) {
	j := newJournal(t)

	batches, err := j.Batches()
	require.NoError(t, err)
	assert.Empty(t, batches)

	_, err = j.Last()
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalEmpty))

	_, err = j.Pop()
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalEmpty))
}

func TestJournal_RecordLastPop(t *testing.T) {
	j := newJournal(t)

	first, err := j.Record([]Correction{{Source: "a.txt", Location: "line 1", Before: "say hi", After: "tellraw hi"}})
	require.NoError(t, err)
	assert.Equal(t, "20261017-093000-1", first.ID)

	second, err := j.Record([]Correction{
		{Source: "w.xml", Location: "1 2 3", Index: 4, Before: `say "q"`, After: "x\ny"},
	})
	require.NoError(t, err)
	assert.Equal(t, "20261017-093000-2", second.ID)

	last, err := j.Last()
	require.NoError(t, err)
	assert.Equal(t, second.ID, last.ID)
	assert.True(t, second.Time.Equal(last.Time))
	assert.Equal(t, second.Corrections, last.Corrections)

	popped, err := j.Pop()
	require.NoError(t, err)
	assert.Equal(t, second.ID, popped.ID)

	batches, err := j.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, first.Corrections, batches[0].Corrections)
}

func TestJournal_KeepsNewest(t *testing.T) {
	j := newJournal(t)
	j.keep = 2

	for i := 0; i < 3; i++ {
		_, err := j.Record([]Correction{{Index: i}})
		require.NoError(t, err)
	}

	batches, err := j.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, 1, batches[0].Corrections[0].Index)
	assert.Equal(t, 2, batches[1].Corrections[0].Index)
}

func TestJournal_CorruptFile(t *testing.T) {
	j := newJournal(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(j.Path()), 0755))
	require.NoError(t, os.WriteFile(j.Path(), []byte("[[batch]\n"), 0644))

	_, err := j.Batches()
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalRead))

	_, err = j.Record(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrJournalRead))
}
