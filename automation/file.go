package automation

import (
	"fmt"
	"os"

	"github.com/mimiclabs/mimic/logger"
	"go.uber.org/zap"
)

// LocalFiles performs file actions directly against the local filesystem.
// File actions stay real even in headless mode.
type LocalFiles struct{}

var _ FileDriver = LocalFiles{}

func (LocalFiles) OpenFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open file %s: %w", path, err)
	}
	logger.Debug("open file", zap.String("path", path))
	return nil
}

func (LocalFiles) SaveFile(path, content string) error {
	logger.Debug("save file", zap.String("path", path))
	return os.WriteFile(path, []byte(content), 0644)
}

func (LocalFiles) MoveFile(src, dst string) error {
	logger.Debug("move file", zap.String("src", src), zap.String("dst", dst))
	return os.Rename(src, dst)
}

func (LocalFiles) RenameFile(src, dst string) error {
	logger.Debug("rename file", zap.String("src", src), zap.String("dst", dst))
	return os.Rename(src, dst)
}
