package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the encoding of a flag document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks a format from a file name extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Loader fetches the raw bytes of a flag document.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
	// Name identifies the document in logs and decides its format by extension.
	Name() string
}

type bytesLoader struct {
	data []byte
}

// Bytes serves an in-memory document. The slice is copied.
func Bytes(data []byte) Loader {
	return bytesLoader{data: append([]byte(nil), data...)}
}

func (l bytesLoader) Load(context.Context) ([]byte, error) { return l.data, nil }
func (l bytesLoader) Name() string                         { return "" }

type localLoader struct {
	path string
}

// LocalFile reads the document from path on every load.
func LocalFile(path string) Loader {
	return localLoader{path: filepath.Clean(path)}
}

func (l localLoader) Name() string { return l.path }

func (l localLoader) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, l.path)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, l.path)
	}

	return os.ReadFile(l.path)
}
