package storage

import (
	"Linkview/internal/api/config"
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

// 需要可用的 Mongo 实例，不可达时跳过；与文件后端共用同一份一致性套件
func TestMongoStoreConformance(t *testing.T) {
	uri := os.Getenv("LINKVIEW_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewMongoStore(ctx, config.MongoConfig{URI: uri, Database: "linkview_test"})
	if err != nil {
		t.Skipf("mongo not reachable at %s: %v", uri, err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = store.Close(closeCtx)
	}()

	// 每次运行使用独立集合名，避免残留数据干扰
	runStoreConformance(t, store, fmt.Sprintf("conf_%d", time.Now().UnixNano()))
}
