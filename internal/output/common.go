package output

import (
	"os"
)

// FileOutput creates its file on the first write, so an export that fails
// before emitting anything leaves no file behind and keeps an existing one intact.
type FileOutput struct {
	path string
	file *os.File
}

// NewFileOutput returns a writer for outputPath. Nothing is created yet.
func NewFileOutput(outputPath string) *FileOutput {
	return &FileOutput{path: outputPath}
}

func (o *FileOutput) Write(p []byte) (int, error) {
	if o.file == nil {
		file, err := os.Create(o.path)
		if err != nil {
			return 0, err
		}
		o.file = file
	}
	return o.file.Write(p)
}

// Close closes the file if it was created.
func (o *FileOutput) Close() error {
	if o.file == nil {
		return nil
	}
	return o.file.Close()
}
