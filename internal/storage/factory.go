package storage

import (
	"Linkview/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
)

// New 按配置选择存储后端
// auto 模式优先尝试 Mongo，连接失败时降级到本地文件存储并记录降级日志；
// 选定后在进程生命周期内固定，不做会话中途的自动切换
func New(ctx context.Context, storageCfg config.StorageConfig, mongoCfg config.MongoConfig) (Store, error) {
	switch storageCfg.Backend {
	case "mongo":
		return NewMongoStore(ctx, mongoCfg)
	case "file":
		return NewFileStore(storageCfg.DataDir)
	case "auto", "":
		store, err := NewMongoStore(ctx, mongoCfg)
		if err == nil {
			return store, nil
		}
		log.Warn("MongoDB unavailable, falling back to local file storage", "err", err)
		return NewFileStore(storageCfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", storageCfg.Backend)
	}
}
