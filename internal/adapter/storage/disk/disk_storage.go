package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/campus-market/listing-service/internal/platform/logger"
)

// DiskStorage writes photos to a local uploads directory served statically
// by the HTTP router. File names get a millisecond-timestamp prefix so
// repeated uploads of the same file cannot collide.
type DiskStorage struct {
	dir    string
	logger *logger.Logger
}

func NewDiskStorage(dir string, log *logger.Logger) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %s: %w", dir, err)
	}
	return &DiskStorage{dir: dir, logger: log}, nil
}

func (s *DiskStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalFileName))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("DiskStorage.Upload: write failed", "path", path, "error", err)
		return "", fmt.Errorf("failed to write photo %s: %w", path, err)
	}

	ref := "/uploads/" + name
	s.logger.Info("DiskStorage.Upload: file written", "path", path, "ref", ref, "size_bytes", len(data))
	return ref, nil
}

// Dir returns the directory backing the /uploads static route.
func (s *DiskStorage) Dir() string {
	return s.dir
}
