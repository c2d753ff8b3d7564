//go:build cgo

package python

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/zerr"
)

// TreeSitterParser extracts imports from the tree-sitter Python syntax tree.
type TreeSitterParser struct{}

var _ ports.ImportParser = (*TreeSitterParser)(nil)

func newTreeSitterParser() (ports.ImportParser, error) {
	return &TreeSitterParser{}, nil
}

// Parse returns the canonical declarations of every import statement in src.
// A file with syntax errors is reported as a parse failure.
func (p *TreeSitterParser) Parse(ctx context.Context, path string, src []byte) ([]string, error) {
	// A parser instance is not safe for concurrent use, so one is created per call.
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, zerr.With(zerr.Wrap(err, "tree-sitter parse failed"), "path", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		line := 1
		if root != nil {
			line = firstErrorLine(root)
		}
		return nil, parseError(path, line, "syntax error")
	}

	var decls declarations
	walk(root, src, &decls)
	return decls.list, nil
}

func walk(n *sitter.Node, src []byte, decls *declarations) {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		switch child.Type() {
		case "import_statement":
			decls.add(importNames(child, src)...)
		case "import_from_statement":
			decls.add(fromNames(child, src)...)
		default:
			walk(child, src, decls)
		}
	}
}

// importNames handles "import a.b" and "import a.b as c".
func importNames(n *sitter.Node, src []byte) []string {
	var out []string
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		switch child.Type() {
		case "dotted_name":
			out = append(out, content(child, src))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				out = append(out, content(name, src))
			}
		}
	}
	return out
}

// fromNames handles "from m import a, b as c" and "from m import *".
func fromNames(n *sitter.Node, src []byte) []string {
	var (
		module   string
		names    []string
		wildcard bool
	)
	m := n.ChildByFieldName("module_name")
	if m != nil {
		module = content(m, src)
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if m != nil && child.StartByte() == m.StartByte() && child.EndByte() == m.EndByte() {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			names = append(names, content(child, src))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, content(name, src))
			}
		case "wildcard_import":
			wildcard = true
		}
	}
	if module == "" {
		return nil
	}
	if wildcard {
		return []string{module}
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, join(module, name))
	}
	return out
}

func firstErrorLine(n *sitter.Node) int {
	if n.IsError() || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := range int(n.ChildCount()) {
		if child := n.Child(i); child.HasError() {
			return firstErrorLine(child)
		}
	}
	return int(n.StartPoint().Row) + 1
}

func content(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
