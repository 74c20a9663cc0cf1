package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/ortholink/exercise-service/internal/models"
)

//go:embed data/*.json
var builtinFS embed.FS

// LoadBuiltin builds the tree from the exercise catalog compiled into the
// binary. This is the default content source when no database is configured.
func LoadBuiltin() (*Tree, error) {
	return LoadFS(builtinFS)
}

// LoadFS reads every section file from the "data/" subdirectory of the given
// filesystem and builds a validated tree. Files are one section each and are
// applied in file-name order, which fixes section display order.
func LoadFS(fsys fs.FS) (*Tree, error) {
	entries, err := fs.ReadDir(fsys, "data")
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}

	var sections []models.Section
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, "data/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read content file %s: %w", entry.Name(), err)
		}
		var section models.Section
		if err := json.Unmarshal(data, &section); err != nil {
			return nil, fmt.Errorf("parse content file %s: %w", entry.Name(), err)
		}
		sections = append(sections, section)
	}

	return NewTree(sections)
}
