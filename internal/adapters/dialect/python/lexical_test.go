package python_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/dialect/python"
	"go.trai.ch/zerr"
)

func TestLexicalParser_Parse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "plain imports",
			src:  "import os\nimport a.b as c, d\n",
			want: []string{"os", "a.b", "d"},
		},
		{
			name: "from imports",
			src:  "from a.b import c, d as e\nfrom x import *\n",
			want: []string{"a.b.c", "a.b.d", "x"},
		},
		{
			name: "relative imports",
			src:  "from . import sibling\nfrom .. import *\nfrom ..pkg.mod import thing\nfrom .mod import *\n",
			want: []string{".sibling", "..", "..pkg.mod.thing", ".mod"},
		},
		{
			name: "parenthesised and continued",
			src:  "from pkg import (\n    a,  # first\n    b as bee,\n)\nimport one, \\\n    two\n",
			want: []string{"pkg.a", "pkg.b", "one", "two"},
		},
		{
			name: "semicolons and block headers",
			src:  "import a; import b\ntry: import c\nexcept ImportError: pass\nif True:\n    from d import e\n",
			want: []string{"a", "b", "c", "d.e"},
		},
		{
			name: "strings and comments are ignored",
			src: "\"\"\"Module doc.\n\nimport fake\n\"\"\"\n" +
				"# import commented\n" +
				"x = 'from nothing import here'\n" +
				"y = {'key': 1}\n" +
				"import real\n",
			want: []string{"real"},
		},
		{
			name: "duplicates collapse",
			src:  "import a\nimport a\nfrom b import c\nfrom b import c\n",
			want: []string{"a", "b.c"},
		},
		{
			name: "no space after from",
			src:  "from.mod import x\n",
			want: []string{".mod.x"},
		},
		{
			name: "keyword prefixes are not imports",
			src:  "important = 1\nfrom_ = 2\nimporter(important)\n",
			want: nil,
		},
		{
			name: "crlf line endings",
			src:  "import a\r\nfrom b import c\r\n",
			want: []string{"a", "b.c"},
		},
	}

	parser := python.NewLexicalParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(context.Background(), "/repo/mod.py", []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexicalParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		reason string
	}{
		{name: "unterminated docstring", src: "import a\n\"\"\"never closed\n", line: 2, reason: "unterminated string literal"},
		{name: "unterminated string", src: "x = 'abc\nimport a\n", line: 1, reason: "unterminated string literal"},
		{name: "unclosed bracket", src: "import a\nfrom b import (c,\n", line: 2, reason: "unclosed bracket"},
		{name: "unmatched bracket", src: "x = 1)\n", line: 1, reason: "unmatched closing bracket"},
		{name: "incomplete from", src: "\nfrom a import\n", line: 2, reason: "invalid import statement"},
		{name: "binary", src: "import a\x00", line: 1, reason: "binary content"},
	}

	parser := python.NewLexicalParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(context.Background(), "/repo/broken.py", []byte(tt.src))
			require.Error(t, err)

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			assert.Equal(t, "failed to parse dependency declarations", zErr.Message())
			meta := zErr.Metadata()
			assert.Equal(t, tt.line, meta["line"])
			assert.Equal(t, tt.reason, meta["reason"])
			assert.Equal(t, "/repo/broken.py", meta["path"])
		})
	}
}

func TestLexicalParser_Parse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := python.NewLexicalParser().Parse(ctx, "/repo/a.py", []byte("import b\n"))
	require.ErrorIs(t, err, context.Canceled)
}
