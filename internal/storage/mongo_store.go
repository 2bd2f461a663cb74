package storage

import (
	"Linkview/internal/api/config"
	"Linkview/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore 网络后端实现
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore 建立连接并校验连通性
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}

	db := client.Database(cfg.Database)
	store := &MongoStore{client: client, db: db}
	store.ensureIndexes(ctx)

	log.Info("MongoDB storage initialized", "db", cfg.Database)
	return store, nil
}

// ensureIndexes 为高频查询字段建索引，失败仅告警不中断
func (s *MongoStore) ensureIndexes(ctx context.Context) {
	indexes := map[string][]mongo.IndexModel{
		"viewers": {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "last_seen_at", Value: -1}}},
		},
		"daily_totals":  {{Keys: bson.D{{Key: "date", Value: -1}}}},
		"hourly_stats":  {{Keys: bson.D{{Key: "hour", Value: -1}}}},
		"scraping_logs": {{Keys: bson.D{{Key: "timestamp", Value: -1}}}},
		"screenshots":   {{Keys: bson.D{{Key: "captured_at", Value: -1}}}},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			log.Warn("create index failed", "collection", coll, "err", err)
		}
	}
}

func (s *MongoStore) Name() string {
	return "mongo"
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toBsonMap(doc)
	if err != nil {
		return "", err
	}
	id := newDocID(m)
	m["_id"] = id

	if _, err = s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", errors.Wrapf(err, "insert into %s", collection)
	}
	return id, nil
}

func (s *MongoStore) UpsertByKey(ctx context.Context, collection string, key Filter, doc any) (UpsertOutcome, error) {
	m, err := toBsonMap(doc)
	if err != nil {
		return "", err
	}
	delete(m, "_id")

	// 整文档替换而非字段合并：新文档里省略的字段在命中时一并清除，与文件后端
	// 的覆盖语义一致。_id 命中时保留原值，未命中时生成字符串 uuid（ReplaceOne
	// 的 upsert 插入会落下 ObjectID 主键，与跨后端的字符串 id 方案不兼容）。
	// 字段值一律 $literal 包裹，避免以 $ 开头的字符串被当作表达式求值
	replacement := bson.M{"_id": bson.M{"$ifNull": bson.A{"$_id", uuid.NewString()}}}
	for k, v := range m {
		replacement[k] = bson.M{"$literal": v}
	}
	update := bson.A{bson.M{"$replaceWith": replacement}}

	res, err := s.db.Collection(collection).UpdateOne(ctx, key.mongo(), update, options.Update().SetUpsert(true))
	if err != nil {
		return "", errors.Wrapf(err, "upsert into %s", collection)
	}
	if res.UpsertedCount > 0 {
		return UpsertCreated, nil
	}
	return UpsertReplaced, nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, q Query, out any) error {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(sortSpec(q.Sort))
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, q.Filter.mongo(), opts)
	if err != nil {
		return errors.Wrapf(err, "find in %s", collection)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	if err = cursor.All(ctx, out); err != nil {
		return errors.Wrapf(err, "decode from %s", collection)
	}
	return nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, q Query, out any) error {
	opts := options.FindOne()
	if len(q.Sort) > 0 {
		opts.SetSort(sortSpec(q.Sort))
	}

	err := s.db.Collection(collection).FindOne(ctx, q.Filter.mongo(), opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "find one in %s", collection)
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context, collection string, f Filter) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, f.mongo())
	if err != nil {
		return 0, errors.Wrapf(err, "count in %s", collection)
	}
	return n, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mongo 将谓词合取翻译为 bson 过滤器
func (f Filter) mongo() bson.M {
	m := bson.M{}
	opm := func(field string) bson.M {
		if cur, ok := m[field].(bson.M); ok {
			return cur
		}
		cur := bson.M{}
		m[field] = cur
		return cur
	}

	for _, c := range f {
		switch c.Op {
		case OpEq:
			m[c.Field] = c.Value
		case OpNe:
			opm(c.Field)["$ne"] = c.Value
		case OpExists:
			// 存在性定义为"存在且非 null"，与文件后端保持一致；
			// $ne:null 不命中缺失字段，$eq:null 同时命中缺失与 null
			if should, _ := c.Value.(bool); should {
				opm(c.Field)["$ne"] = nil
			} else {
				m[c.Field] = nil
			}
		case OpNotRegex:
			pattern, _ := c.Value.(string)
			opm(c.Field)["$not"] = primitive.Regex{Pattern: pattern}
		case OpGte:
			opm(c.Field)["$gte"] = c.Value
		case OpLte:
			opm(c.Field)["$lte"] = c.Value
		case OpLt:
			opm(c.Field)["$lt"] = c.Value
		}
	}
	return m
}

func sortSpec(sorts []Sort) bson.D {
	spec := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		order := 1
		if s.Desc {
			order = -1
		}
		spec = append(spec, bson.E{Key: s.Field, Value: order})
	}
	return spec
}

func toBsonMap(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal document")
	}
	var m bson.M
	if err = bson.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal document")
	}
	return m, nil
}

func newDocID(m bson.M) string {
	if id, ok := m["_id"].(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
