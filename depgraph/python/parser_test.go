package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImports_ImportStatements(t *testing.T) {
	source := `
import os
import sys as system
import pkg.module
`
	imports, err := ParseImports("app.py", []byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 3)

	assert.Equal(t, ImportReference{Module: "os"}, imports[0])
	assert.Equal(t, ImportReference{Module: "sys"}, imports[1])
	assert.Equal(t, ImportReference{Module: "pkg.module"}, imports[2])
}

func TestParseImports_MultipleModulesPerStatement(t *testing.T) {
	source := `import json, textwrap`

	imports, err := ParseImports("app.py", []byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, "json", imports[0].Module)
	assert.Equal(t, "textwrap", imports[1].Module)
}

func TestParseImports_FromStatements(t *testing.T) {
	source := `
from collections import defaultdict
from . import helpers
from ..utils import slugify, canonicalize
from .pkg import api as client
`
	imports, err := ParseImports("app.py", []byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 4)

	assert.Equal(t, ImportReference{Module: "collections", Names: []string{"defaultdict"}}, imports[0])
	assert.Equal(t, ImportReference{Module: "", Dots: 1, Names: []string{"helpers"}}, imports[1])
	assert.Equal(t, ImportReference{Module: "utils", Dots: 2, Names: []string{"slugify", "canonicalize"}}, imports[2])
	assert.Equal(t, ImportReference{Module: "pkg", Dots: 1, Names: []string{"api"}}, imports[3])
}

func TestParseImports_WildcardDependsOnModuleOnly(t *testing.T) {
	source := `from helpers import *`

	imports, err := ParseImports("app.py", []byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 1)
	assert.Equal(t, "helpers", imports[0].Module)
	assert.Empty(t, imports[0].Names)
}

func TestParseImports_SourceOrderPreserved(t *testing.T) {
	source := `
import zlib
import abc

def late():
    import json
`
	imports, err := ParseImports("app.py", []byte(source))

	require.NoError(t, err)
	require.Len(t, imports, 3)
	assert.Equal(t, "zlib", imports[0].Module)
	assert.Equal(t, "abc", imports[1].Module)
	assert.Equal(t, "json", imports[2].Module)
}

func TestParseImports_NoImports(t *testing.T) {
	imports, err := ParseImports("app.py", []byte("x = 1\n"))

	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestParseImports_SyntaxError(t *testing.T) {
	source := "import os\ndef broken(:\n    pass\n"

	imports, err := ParseImports("app.py", []byte(source))

	assert.Nil(t, imports)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "app.py", parseErr.Path)
	assert.Greater(t, parseErr.Line, 0)
	assert.Contains(t, parseErr.Error(), "app.py")
}
