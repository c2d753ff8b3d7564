package cinclude_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/impact/internal/adapters/dialect/cinclude"
	"go.trai.ch/impact/internal/core/domain"
)

func TestDirectiveParser_Parse(t *testing.T) {
	src := []byte(`#include <stdio.h>
#include "util.h"
  #  include   "../common/log.h"   // trailing comment
#include "util.h"
#define X 1
int main(void) { return 0; }
`)
	d := cinclude.New()
	p, err := d.Parser("")
	require.NoError(t, err)

	got, err := p.Parse(context.Background(), "/repo/src/main.c", src)
	require.NoError(t, err)
	assert.Equal(t, []string{"util.h", "../common/log.h"}, got)

	_, err = p.Parse(context.Background(), "/repo/src/bad.c", []byte("#include \"oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dependency declarations")

	_, err = d.Parser("clang")
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestResolver_Resolve(t *testing.T) {
	files := domain.PathSet{
		filepath.FromSlash("/repo/src/util.h"):        {},
		filepath.FromSlash("/repo/common/log.h"):      {},
		filepath.FromSlash("/repo/include/api/api.h"): {},
	}
	d := cinclude.New()
	search := d.SearchPaths([]string{filepath.FromSlash("/repo")}, []string{filepath.FromSlash("/repo/include")})
	assert.Equal(t, []string{filepath.FromSlash("/repo/include"), filepath.FromSlash("/repo")}, search)

	r := d.NewResolver(files, search)
	importer := filepath.FromSlash("/repo/src/main.c")

	tests := []struct {
		decl string
		want string
		ok   bool
	}{
		{decl: "util.h", want: "/repo/src/util.h", ok: true},
		{decl: "../common/log.h", want: "/repo/common/log.h", ok: true},
		{decl: "api/api.h", want: "/repo/include/api/api.h", ok: true},
		{decl: "common/log.h", want: "/repo/common/log.h", ok: true},
		{decl: "missing.h", ok: false},
	}
	for _, tt := range tests {
		got, ok := r.Resolve(importer, tt.decl)
		assert.Equal(t, tt.ok, ok, tt.decl)
		if tt.ok {
			assert.Equal(t, filepath.FromSlash(tt.want), got, tt.decl)
		}
	}
}
