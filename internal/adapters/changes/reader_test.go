package changes_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/changes"
	"go.trai.ch/impact/internal/core/domain"
	"go.trai.ch/impact/internal/core/ports"
)

var _ ports.ChangeReader = (*changes.Reader)(nil)

func TestReadPaths(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "one per line",
			input: "pkg/a.py\npkg/b.py\n",
			want:  []string{"pkg/a.py", "pkg/b.py"},
		},
		{
			name:  "blank lines comments and whitespace",
			input: "\n  pkg/a.py  \n# generated\n\r\npkg/b.py",
			want:  []string{"pkg/a.py", "pkg/b.py"},
		},
		{
			name:  "duplicates keep first position",
			input: "b.py\na.py\nb.py\n",
			want:  []string{"b.py", "a.py"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := changes.NewReader().ReadPaths(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReadPaths_ReadError(t *testing.T) {
	_, err := changes.NewReader().ReadPaths(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Contains(t, err.Error(), "failed to read changed paths")
}

const gitDiff = `diff --git a/pkg/util.py b/pkg/util.py
index 1111111..2222222 100644
--- a/pkg/util.py
+++ b/pkg/util.py
@@ -1,2 +1,2 @@
-x = 1
+x = 2
 y = 3
diff --git a/tests/test_new.py b/tests/test_new.py
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/tests/test_new.py
@@ -0,0 +1 @@
+def test_new(): pass
diff --git a/old.py b/old.py
deleted file mode 100644
index 4444444..0000000
--- a/old.py
+++ /dev/null
@@ -1 +0,0 @@
-x = 1
diff --git a/src/a.py b/src/b.py
similarity index 100%
rename from src/a.py
rename to src/b.py
`

func TestReadDiff_Git(t *testing.T) {
	got, err := changes.NewReader().ReadDiff(strings.NewReader(gitDiff))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"pkg/util.py",
		"tests/test_new.py",
		"old.py",
		"src/a.py",
		"src/b.py",
	}, got)
}

func TestReadDiff_PlainUnified(t *testing.T) {
	input := "--- lib/mod.py\n" +
		"+++ lib/mod.py\n" +
		"@@ -1 +1 @@\n" +
		"-a\n" +
		"+b\n"

	got, err := changes.NewReader().ReadDiff(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/mod.py"}, got)
}

func TestReadDiff_Empty(t *testing.T) {
	got, err := changes.NewReader().ReadDiff(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
