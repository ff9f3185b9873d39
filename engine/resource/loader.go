package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/haunted-house/common"
)

// ImageLoader fetches and decodes one image. Implementations are called from worker
// goroutines and must be safe for concurrent use.
type ImageLoader interface {
	Load(key string) (common.TextureStagingData, error)
}

// FileImageLoader reads PNG or JPEG files below Root. Keys are slash-separated paths;
// a leading slash is relative to Root.
type FileImageLoader struct {
	Root string
}

var _ ImageLoader = FileImageLoader{}

// Load opens and decodes the file named by key.
func (l FileImageLoader) Load(key string) (common.TextureStagingData, error) {
	path := filepath.Join(l.Root, filepath.FromSlash(key))
	f, err := os.Open(path)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	defer f.Close()

	tex, err := common.DecodeImage(f)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("%s: %w", path, err)
	}
	return tex, nil
}

// LoaderFunc adapts a function to ImageLoader.
type LoaderFunc func(key string) (common.TextureStagingData, error)

// Load calls f(key).
func (f LoaderFunc) Load(key string) (common.TextureStagingData, error) {
	return f(key)
}
