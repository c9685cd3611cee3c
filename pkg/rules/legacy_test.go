package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegacy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Definition
	}{
		{
			name:  "single line",
			input: `"gamemode=;>("0"|"s")<;" : "m=;:(1)" | "m="`,
			want: []Definition{
				{Pattern: `gamemode=;>("0"|"s")<;`, Template: "m=;:(1)", Assertion: "m=", Origin: "1"},
			},
		},
		{
			name:  "assertion omitted",
			input: `"a" : "b"`,
			want:  []Definition{{Pattern: "a", Template: "b", Origin: "1"}},
		},
		{
			name:  "empty assertion",
			input: `  "a" : "b" | ""  `,
			want:  []Definition{{Pattern: "a", Template: "b", Origin: "1"}},
		},
		{
			name:  "template with quotes",
			input: `"say ;?(.*)" : "tellraw @a "text":";:(1)"" | ""`,
			want: []Definition{
				{Pattern: "say ;?(.*)", Template: `tellraw @a "text":";:(1)"`, Origin: "1"},
			},
		},
		{
			name: "split over lines",
			input: "# comment\n\n\"a\"\n:\n\"b\"\n|\n\"c\"\n",
			want:  []Definition{{Pattern: "a", Template: "b", Assertion: "c", Origin: "3"}},
		},
		{
			name:  "windows line endings and noise",
			input: "noise\r\n\"a\" : \"b\" | \"\"\r\n\"c\" : \"d\" | \"\"\r\n",
			want: []Definition{
				{Pattern: "a", Template: "b", Origin: "2"},
				{Pattern: "c", Template: "d", Origin: "3"},
			},
		},
		{
			name:  "no rules",
			input: "just text\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLegacy(tt.input))
		})
	}
}

func TestParseLegacy_CompilesCleanly(t *testing.T) {
	defs := ParseLegacy(`"g=;>("1"|"s"|"survival")<;" : "g=;:(1)" | ""`)
	require.Len(t, defs, 1)
	defs[0].Name = "legacy"

	set, rejected := Compile(defs, Options{})
	require.Empty(t, rejected)
	assert.Equal(t, "g=survival", set.Apply("g=s").Text)
}
