package storage

// 谓词子集：字段等值、存在性、不等、正则排除、数值/时间比较
// 两个后端对同一谓词必须给出一致语义，语义基准如下：
//   - Eq：字段存在且相等
//   - Ne：字段缺失、为 null 或不相等均命中
//   - Exists(true)：字段存在且非 null；Exists(false) 反之
//   - NotRegex：字段缺失或为 null 恒命中；字段存在时值正则不匹配才命中
//   - Gte/Lte/Lt：字段缺失不命中

type CondOp int

const (
	OpEq CondOp = iota
	OpNe
	OpExists
	OpNotRegex
	OpGte
	OpLte
	OpLt
)

// Cond 单个字段谓词
type Cond struct {
	Field string
	Op    CondOp
	Value any
}

// Filter 谓词合取
type Filter []Cond

func Eq(field string, value any) Cond {
	return Cond{Field: field, Op: OpEq, Value: value}
}

func Ne(field string, value any) Cond {
	return Cond{Field: field, Op: OpNe, Value: value}
}

func Exists(field string, should bool) Cond {
	return Cond{Field: field, Op: OpExists, Value: should}
}

// NotRegex 正则排除，pattern 为 Go 正则（大小写不敏感需显式 (?i) 前缀）
func NotRegex(field string, pattern string) Cond {
	return Cond{Field: field, Op: OpNotRegex, Value: pattern}
}

func Gte(field string, value any) Cond {
	return Cond{Field: field, Op: OpGte, Value: value}
}

func Lte(field string, value any) Cond {
	return Cond{Field: field, Op: OpLte, Value: value}
}

func Lt(field string, value any) Cond {
	return Cond{Field: field, Op: OpLt, Value: value}
}
