package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Library resolves sound IDs to WAV files in a directory.
type Library struct {
	fs  afero.Fs
	dir string
}

// NewLibrary creates a Library reading <dir>/<id>.wav from fs.
func NewLibrary(fs afero.Fs, dir string) *Library {
	return &Library{fs: fs, dir: dir}
}

// Dir returns the directory sounds are read from.
func (l *Library) Dir() string {
	return l.dir
}

// Load returns the WAV data for id.
func (l *Library) Load(id string) ([]byte, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("invalid sound id %q", id)
	}

	data, err := afero.ReadFile(l.fs, filepath.Join(l.dir, id+".wav"))
	if err != nil {
		return nil, fmt.Errorf("failed to load sound %q: %w", id, err)
	}
	return data, nil
}

// Play loads id and starts playing it.
func (l *Library) Play(id string) (*Player, error) {
	data, err := l.Load(id)
	if err != nil {
		return nil, err
	}
	return Play(data)
}
