package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/cmdcorrect/pkg/errors"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readSource(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestTextFile_Subjects(t *testing.T) {
	path := writeSource(t, "tick.mcfunction", "# setup\nsay hi\n\n  \ngamemode 1 @a\n")

	subjects, err := NewTextFile(path).Subjects()
	require.NoError(t, err)

	assert.Equal(t, []Subject{
		{Location: "line 2", Command: "say hi", Index: 1},
		{Location: "line 5", Command: "gamemode 1 @a", Index: 4},
	}, subjects)
}

func TestTextFile_WritePreservesOtherLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "trailing newline", content: "# c\nsay hi\n\nkill @e\n", want: "# c\ntellraw hi\n\nkill @e\n"},
		{name: "no trailing newline", content: "say hi\nkill @e", want: "tellraw hi\nkill @e"},
		{name: "crlf kept", content: "say hi\r\nkill @e\r\n", want: "tellraw hi\r\nkill @e\r\n"},
		{name: "mixed endings kept", content: "say hi\r\nkill @e\n# c\r\n", want: "tellraw hi\r\nkill @e\n# c\r\n"},
		{name: "crlf without trailing newline", content: "say hi\r\nkill @e", want: "tellraw hi\r\nkill @e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "f.mcfunction", tt.content)
			src := NewTextFile(path)

			subjects, err := src.Subjects()
			require.NoError(t, err)
			updated := subjects[0]
			updated.Command = "tellraw hi"

			require.NoError(t, src.Write([]Subject{updated}))
			assert.Equal(t, tt.want, readSource(t, path))
		})
	}
}

func TestTextFile_SubjectsDropCarriageReturn(t *testing.T) {
	path := writeSource(t, "f.mcfunction", "say hi\r\n")

	subjects, err := NewTextFile(path).Subjects()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "say hi", subjects[0].Command)
}

func TestTextFile_Errors(t *testing.T) {
	_, err := NewTextFile(filepath.Join(t.TempDir(), "missing")).Subjects()
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRead))

	path := writeSource(t, "f.txt", "a\n")
	src := NewTextFile(path)

	err = src.Write([]Subject{{Index: 3, Command: "x"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceWrite))

	err = src.Write([]Subject{{Index: 0, Command: "x\ny"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceWrite))
	assert.Equal(t, "a\n", readSource(t, path))
}

func TestTextFile_Empty(t *testing.T) {
	subjects, err := NewTextFile(writeSource(t, "empty.txt", "")).Subjects()
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestOpen(t *testing.T) {
	assert.IsType(t, &XMLFile{}, Open("world.XML"))
	assert.IsType(t, &TextFile{}, Open("tick.mcfunction"))

	all := OpenAll([]string{"a.xml", "b.txt"})
	require.Len(t, all, 2)
	assert.Equal(t, "b.txt", all[1].Name())
}
