package depgraph

import "os"

// ContentReader reads file content given a file path. Injecting it keeps the
// builder testable against fixtures that vanish or fail to read.
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader returns a ContentReader backed by the local
// filesystem.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}
