package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNodeNames_UniqueBaseNames(t *testing.T) {
	names := BuildNodeNames([]string{
		"/project/main.py",
		"/project/utils/helpers.py",
	})

	assert.Equal(t, map[string]string{
		"/project/main.py":          "main.py",
		"/project/utils/helpers.py": "helpers.py",
	}, names)
}

func TestBuildNodeNames_DisambiguatesByParentDirectory(t *testing.T) {
	names := BuildNodeNames([]string{
		"/project/api/models.py",
		"/project/db/models.py",
	})

	assert.Equal(t, map[string]string{
		"/project/api/models.py": "api/models.py",
		"/project/db/models.py":  "db/models.py",
	}, names)
}

func TestBuildNodeNames_DeepensUntilDistinct(t *testing.T) {
	names := BuildNodeNames([]string{
		"/project/a/pkg/models.py",
		"/project/b/pkg/models.py",
	})

	assert.Equal(t, map[string]string{
		"/project/a/pkg/models.py": "a/pkg/models.py",
		"/project/b/pkg/models.py": "b/pkg/models.py",
	}, names)
}
