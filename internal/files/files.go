package files

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Gateway 封装所有文件系统操作，不含重试逻辑
type Gateway struct{}

func (Gateway) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir 创建目录及缺失的上级目录，已存在则不做任何事
func (Gateway) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// Move 移动文件，目标已存在时拒绝覆盖。优先用RENAME_NOREPLACE原子改名，
// 文件系统不支持时退回到先检查后改名
func (Gateway) Move(sourcePath, destinationPath string) error {
	err := unix.Renameat2(unix.AT_FDCWD, sourcePath, unix.AT_FDCWD, destinationPath, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EEXIST) {
		return fmt.Errorf("destination already exists: %s", destinationPath)
	}
	if !errors.Is(err, unix.EINVAL) && !errors.Is(err, unix.ENOSYS) && !errors.Is(err, unix.ENOTSUP) {
		return fmt.Errorf("move file: %w", err)
	}

	// 退回路径：检查与改名之间存在短暂的竞争窗口
	if _, err := os.Stat(destinationPath); err == nil {
		return fmt.Errorf("destination already exists: %s", destinationPath)
	}
	if err := os.Rename(sourcePath, destinationPath); err != nil {
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}
