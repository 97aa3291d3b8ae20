// Package bundle orchestrates the analysis pipeline and writes the ordered
// bundle artifact.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pybundle/pybundle/depgraph"
)

// Write emits the ordered files as delimited blocks to outputPath. Each block
// is "# Start of <rel>", the file's source verbatim (with a newline appended
// when the source lacks a trailing one), and "# End of <rel>"; consecutive
// blocks are separated by exactly one blank line. The artifact is written to
// a temporary file in the target directory and renamed into place, so a
// failed run never leaves a half-written bundle behind.
func Write(ordering []string, projectRoot, outputPath string, read depgraph.ContentReader) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".pybundle-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeBlocks(tmp, ordering, projectRoot, read); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func writeBlocks(out *os.File, ordering []string, projectRoot string, read depgraph.ContentReader) error {
	for i, file := range ordering {
		if i > 0 {
			if _, err := out.WriteString("\n"); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
		}

		rel := relativeTo(projectRoot, file)

		var block strings.Builder
		content, err := read(file)
		if err != nil {
			// A dependency vanished between discovery and write; keep the
			// bundle usable and record the gap in place.
			block.WriteString(fmt.Sprintf("# Error: file not found: %s\n", rel))
		} else {
			block.WriteString(fmt.Sprintf("# Start of %s\n", rel))
			block.Write(content)
			if len(content) > 0 && content[len(content)-1] != '\n' {
				block.WriteByte('\n')
			}
			block.WriteString(fmt.Sprintf("# End of %s\n", rel))
		}

		if _, err := out.WriteString(block.String()); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}

// relativeTo renders file relative to root with forward slashes, falling back
// to the absolute path when the file sits outside root.
func relativeTo(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}
