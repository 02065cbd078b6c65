// Package storage 上传文件存储。业务层只持有返回的路径字符串。
package storage

import (
	"context"
	"io"
)

// Store 文件存储接口
type Store interface {
	// Save 保存文件内容，返回可持久化引用的相对路径
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
}
