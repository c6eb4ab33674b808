package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"fundraising-service/internal/core/domain"
	output "fundraising-service/internal/core/ports/output"
)

type fileStore struct {
	dir string
}

// NewFileStore creates an artifact store that keeps one file per model
// family under dir. The directory is created on first use.
func NewFileStore(dir string) output.ArtifactStore {
	return &fileStore{dir: dir}
}

func (s *fileStore) Save(family string, blob []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	path := s.path(family)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	return nil
}

func (s *fileStore) Load(family string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(family))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrModelNotTrained
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return blob, nil
}

func (s *fileStore) path(family string) string {
	return filepath.Join(s.dir, family+".json")
}

// Ensure interface compliance
var _ output.ArtifactStore = (*fileStore)(nil)
