package driver

import (
	"fmt"

	"numerus/internal/diag"
	"numerus/internal/source"
)

// loadFile reads path into fs. A file that cannot be read is replaced by an
// empty virtual file and a single IOLoadFileError at 1:1.
func loadFile(fs *source.FileSet, path string) (source.FileID, *diag.Diagnostic) {
	id, err := fs.Load(path)
	if err == nil {
		return id, nil
	}
	id = fs.AddVirtual(path, nil)
	d := diag.NewError(diag.IOLoadFileError, source.Span{File: id}, fmt.Sprintf("Cannot read file: %v", err))
	return id, &d
}
