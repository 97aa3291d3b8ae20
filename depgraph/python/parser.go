package python

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ImportReference is a raw import extracted from one Python file, before
// resolution. Dots counts the leading dots of a relative form (0 means
// absolute), Module is the dotted path after the dots (may be empty for
// "from . import x"), and Names holds the imported names of a from-form.
type ImportReference struct {
	Module string
	Dots   int
	Names  []string
}

// ParseError reports a file that could not be parsed as Python.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

// ParseImports parses Python source and extracts its import references in
// source order. A tree containing syntax errors yields a *ParseError and no
// references; the caller decides whether to keep the file as a leaf node.
func ParseImports(filePath string, sourceCode []byte) ([]ImportReference, error) {
	lang := python.GetLanguage()

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line, msg := firstSyntaxError(root)
		return nil, &ParseError{Path: filePath, Line: line, Message: msg}
	}

	return extractImportsFromTree(root, sourceCode), nil
}

// firstSyntaxError locates the first ERROR or MISSING node and returns its
// 1-based line together with a short description.
func firstSyntaxError(root *sitter.Node) (int, string) {
	var found *sitter.Node

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(root)
	if found == nil {
		return int(root.StartPoint().Row) + 1, "invalid syntax"
	}

	line := int(found.StartPoint().Row) + 1
	if found.IsMissing() {
		return line, fmt.Sprintf("missing %q", found.Type())
	}
	return line, "invalid syntax"
}

// extractImportsFromTree walks the AST collecting import references.
func extractImportsFromTree(rootNode *sitter.Node, sourceCode []byte) []ImportReference {
	var imports []ImportReference

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Type() {
		case "import_statement":
			for _, module := range extractImportStatementModules(n, sourceCode) {
				imports = append(imports, newImportReference(module, nil))
			}
		case "import_from_statement", "future_import_statement":
			module, names := extractImportFromParts(n, sourceCode)
			if module != "" || len(names) > 0 {
				imports = append(imports, newImportReference(module, names))
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return imports
}

// newImportReference splits leading dots off a raw module spelling.
func newImportReference(module string, names []string) ImportReference {
	dots := 0
	for dots < len(module) && module[dots] == '.' {
		dots++
	}
	return ImportReference{
		Module: module[dots:],
		Dots:   dots,
		Names:  names,
	}
}

func extractImportStatementModules(node *sitter.Node, sourceCode []byte) []string {
	var modules []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		module := extractModuleName(child, sourceCode)
		if module != "" {
			modules = append(modules, module)
		}
	}
	return modules
}

// extractImportFromParts splits a from-import into its module spelling
// (everything before the "import" keyword) and the imported names after it.
func extractImportFromParts(node *sitter.Node, sourceCode []byte) (string, []string) {
	var module string
	var names []string
	seenImportKeyword := false

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "import" {
			seenImportKeyword = true
			continue
		}

		if !seenImportKeyword {
			switch child.Type() {
			case "relative_import", "dotted_name":
				module = strings.TrimSpace(child.Content(sourceCode))
			}
			continue
		}

		switch child.Type() {
		case "dotted_name", "identifier":
			names = append(names, strings.TrimSpace(child.Content(sourceCode)))
		case "aliased_import":
			if name := extractModuleName(child, sourceCode); name != "" {
				names = append(names, name)
			}
		case "wildcard_import":
			// "from x import *" depends on the module only.
		}
	}

	return module, names
}

func extractModuleName(node *sitter.Node, sourceCode []byte) string {
	switch node.Type() {
	case "dotted_name", "identifier", "relative_import":
		return strings.TrimSpace(node.Content(sourceCode))
	case "aliased_import":
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			if child.Type() == "dotted_name" || child.Type() == "identifier" {
				return strings.TrimSpace(child.Content(sourceCode))
			}
		}
	}
	return ""
}
