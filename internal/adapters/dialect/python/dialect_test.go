package python_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/dialect/python"
	"go.trai.ch/impact/internal/core/domain"
)

func TestDialect_Defaults(t *testing.T) {
	d := python.NewWithPythonPath(nil)
	assert.Equal(t, "python", d.Name())

	defaults := d.Defaults()
	assert.Equal(t, []string{".py"}, defaults.Suffixes)
	assert.Equal(t, []string{"test_*.py", "*_test.py"}, defaults.TestPatterns)
	assert.Equal(t, python.ParserLexical, defaults.Parser)
}

func TestDialect_Parser(t *testing.T) {
	d := python.NewWithPythonPath(nil)

	p, err := d.Parser("")
	require.NoError(t, err)
	assert.IsType(t, &python.LexicalParser{}, p)

	p, err = d.Parser(python.ParserLexical)
	require.NoError(t, err)
	assert.IsType(t, &python.LexicalParser{}, p)

	_, err = d.Parser("pyright")
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "unknown parser")
}

func TestDialect_SearchPaths(t *testing.T) {
	root := filepath.FromSlash("/repo")
	inside := filepath.FromSlash("/repo/vendor")
	outside := filepath.FromSlash("/opt/site")
	lookup := filepath.FromSlash("/repo/src")

	d := python.NewWithPythonPath([]string{inside, "", outside, root})

	got := d.SearchPaths([]string{root}, []string{lookup})
	assert.Equal(t, []string{root, lookup, inside}, got)
}
