package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStore 本地磁盘实现，文件落在 root 下按用途分目录
type LocalStore struct {
	root string
}

// NewLocalStore 创建本地存储
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Save 以 时间戳-uuid-原名 命名写入，避免覆盖同名上传
func (s *LocalStore) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	target := filepath.Join(s.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], filepath.Base(filename))
	path := filepath.Join(target, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path, nil
}
