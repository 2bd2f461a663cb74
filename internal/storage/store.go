package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound FindOne 未命中任何文档
var ErrNotFound = errors.New("storage: document not found")

// UpsertOutcome UpsertByKey 的结果标记
type UpsertOutcome string

const (
	UpsertCreated  UpsertOutcome = "created"
	UpsertReplaced UpsertOutcome = "replaced"
)

// Sort 排序项
type Sort struct {
	Field string
	Desc  bool
}

// Query 查询参数，Limit 为 0 表示不限制
type Query struct {
	Filter Filter
	Sort   []Sort
	Limit  int64
}

// Store 后端无关的文档存储接口
// 两个实现（Mongo / 本地文件）必须对同一谓词子集给出完全一致的可观测行为，
// 这是本组件的核心正确性要求
type Store interface {
	// Name 后端标识，用于日志
	Name() string

	// InsertOne 插入文档并返回生成的文档 ID
	InsertOne(ctx context.Context, collection string, doc any) (string, error)

	// UpsertByKey 按键字段 upsert：命中则整体覆盖（保留原 _id），未命中则插入
	// key 仅支持等值条件
	UpsertByKey(ctx context.Context, collection string, key Filter, doc any) (UpsertOutcome, error)

	// Find 执行过滤/排序/截断后将完整结果集一次性解码到 out（*[]T）
	Find(ctx context.Context, collection string, q Query, out any) error

	// FindOne 取查询结果的首条文档，未命中返回 ErrNotFound
	FindOne(ctx context.Context, collection string, q Query, out any) error

	// Count 统计满足过滤条件的文档数
	Count(ctx context.Context, collection string, f Filter) (int64, error)

	Close(ctx context.Context) error
}
