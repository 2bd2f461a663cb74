package storage

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// FileStore 本地文件后端：每个集合一个 JSON 数组文件，Mongo 不可用时的降级实现
// 查询语义与 MongoStore 对齐，谓词语义基准见 filter.go
type FileStore struct {
	dataDir string
	mu      sync.Mutex
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data directory")
	}
	log.Info("file storage initialized", "dir", dataDir)
	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) Name() string {
	return "file"
}

func (s *FileStore) filePath(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

func (s *FileStore) loadCollection(collection string) ([]map[string]any, error) {
	raw, err := os.ReadFile(s.filePath(collection))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read collection %s", collection)
	}

	var docs []map[string]any
	if err = json.Unmarshal(raw, &docs); err != nil {
		return nil, errors.Wrapf(err, "parse collection %s", collection)
	}
	return docs, nil
}

func (s *FileStore) saveCollection(collection string, docs []map[string]any) error {
	raw, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode collection %s", collection)
	}
	if err = os.WriteFile(s.filePath(collection), raw, 0o644); err != nil {
		return errors.Wrapf(err, "write collection %s", collection)
	}
	return nil
}

func (s *FileStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := toJSONMap(doc)
	if err != nil {
		return "", err
	}
	id, _ := m["_id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	m["_id"] = id

	docs, err := s.loadCollection(collection)
	if err != nil {
		return "", err
	}
	docs = append(docs, m)
	if err = s.saveCollection(collection, docs); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FileStore) UpsertByKey(ctx context.Context, collection string, key Filter, doc any) (UpsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := toJSONMap(doc)
	if err != nil {
		return "", err
	}

	matcher, err := compileFilter(key)
	if err != nil {
		return "", err
	}

	docs, err := s.loadCollection(collection)
	if err != nil {
		return "", err
	}

	outcome := UpsertCreated
	idx := -1
	for i, existing := range docs {
		if matcher.matches(existing) {
			idx = i
			break
		}
	}

	if idx >= 0 {
		// 整体覆盖，保留原 _id
		m["_id"] = docs[idx]["_id"]
		docs[idx] = m
		outcome = UpsertReplaced
	} else {
		m["_id"] = uuid.NewString()
		docs = append(docs, m)
	}

	if err = s.saveCollection(collection, docs); err != nil {
		return "", err
	}
	return outcome, nil
}

func (s *FileStore) Find(ctx context.Context, collection string, q Query, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched, err := s.query(collection, q)
	if err != nil {
		return err
	}
	return decodeDocs(matched, out)
}

func (s *FileStore) FindOne(ctx context.Context, collection string, q Query, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q.Limit = 1
	matched, err := s.query(collection, q)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return ErrNotFound
	}

	raw, err := json.Marshal(matched[0])
	if err != nil {
		return errors.Wrap(err, "encode document")
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode document")
	}
	return nil
}

func (s *FileStore) Count(ctx context.Context, collection string, f Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched, err := s.query(collection, Query{Filter: f})
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) query(collection string, q Query) ([]map[string]any, error) {
	docs, err := s.loadCollection(collection)
	if err != nil {
		return nil, err
	}

	matcher, err := compileFilter(q.Filter)
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		if matcher.matches(doc) {
			matched = append(matched, doc)
		}
	}

	if len(q.Sort) > 0 {
		sortDocs(matched, q.Sort)
	}
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func decodeDocs(docs []map[string]any, out any) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return errors.Wrap(err, "encode result set")
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode result set")
	}
	return nil
}

func toJSONMap(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal document")
	}
	var m map[string]any
	if err = json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal document")
	}
	return m, nil
}

// compiledFilter 预编译后的谓词合取（正则仅编译一次）
type compiledFilter struct {
	conds   []Cond
	regexps map[int]*regexp.Regexp
}

func compileFilter(f Filter) (*compiledFilter, error) {
	cf := &compiledFilter{conds: f, regexps: map[int]*regexp.Regexp{}}
	for i, c := range f {
		if c.Op != OpNotRegex {
			continue
		}
		pattern, _ := c.Value.(string)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
		}
		cf.regexps[i] = re
	}
	return cf, nil
}

func (cf *compiledFilter) matches(doc map[string]any) bool {
	for i, c := range cf.conds {
		value, present := doc[c.Field]
		if value == nil {
			present = false
		}

		switch c.Op {
		case OpEq:
			cmp, ok := compareValues(value, c.Value)
			if !present || !ok || cmp != 0 {
				return false
			}
		case OpNe:
			if present {
				if cmp, ok := compareValues(value, c.Value); ok && cmp == 0 {
					return false
				}
			}
		case OpExists:
			should, _ := c.Value.(bool)
			if present != should {
				return false
			}
		case OpNotRegex:
			// 字段缺失或为 null 恒命中，与 Mongo $not 对缺失字段的行为一致
			if present {
				str, _ := value.(string)
				if cf.regexps[i].MatchString(str) {
					return false
				}
			}
		case OpGte:
			cmp, ok := compareValues(value, c.Value)
			if !present || !ok || cmp < 0 {
				return false
			}
		case OpLte:
			cmp, ok := compareValues(value, c.Value)
			if !present || !ok || cmp > 0 {
				return false
			}
		case OpLt:
			cmp, ok := compareValues(value, c.Value)
			if !present || !ok || cmp >= 0 {
				return false
			}
		}
	}
	return true
}

// compareValues 比较文档值（JSON 解码产物）与查询值
// 时间字段在文件中以 RFC3339 字符串存储，查询值为 time.Time 时按时间语义比较
func compareValues(docVal any, condVal any) (int, bool) {
	switch cv := condVal.(type) {
	case time.Time:
		str, ok := docVal.(string)
		if !ok {
			return 0, false
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return 0, false
		}
		switch {
		case t.Before(cv):
			return -1, true
		case t.After(cv):
			return 1, true
		default:
			return 0, true
		}
	case string:
		str, ok := docVal.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(str, cv), true
	case bool:
		b, ok := docVal.(bool)
		if !ok {
			return 0, false
		}
		if b == cv {
			return 0, true
		}
		return 1, true
	default:
		df, ok1 := toFloat(docVal)
		cf, ok2 := toFloat(condVal)
		if !ok1 || !ok2 {
			return 0, false
		}
		switch {
		case df < cf:
			return -1, true
		case df > cf:
			return 1, true
		default:
			return 0, true
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sortDocs 稳定多键排序，缺失字段排在最前（升序时）
func sortDocs(docs []map[string]any, sorts []Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, s := range sorts {
			cmp := compareForSort(docs[i][s.Field], docs[j][s.Field])
			if cmp == 0 {
				continue
			}
			if s.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareForSort(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if af, ok1 := toFloat(a); ok1 {
		if bf, ok2 := toFloat(b); ok2 {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}

	// RFC3339 字符串按字典序即时间序
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
