package service

import (
	"Linkview/internal/model"
	"regexp"
	"strings"
	"unicode/utf8"
)

// 来源页只对少数访客展示真实姓名，其余以匿名描述呈现。
// 分类器仅凭文本表面形态区分"披露了真实身份"与"仅披露了类别"，
// 属于尽力而为的启发式，误判在可接受范围内。
//
// 规则以有序数据表达而非硬编码分支：历史上规则集随观察到的新匿名
// 描述形态多次追加，数据化便于在不动协调逻辑的前提下扩充。

// ClassifierRule 单条分类规则，命中即判为 premium
type ClassifierRule struct {
	Name  string
	Match func(name, lower string) bool
}

var (
	// 匿名化标记子串，大小写不敏感
	anonymousMarkers = []string{
		"someone at",
		"linkedin member",
		"work at",
		"found you through",
		"has a connection",
	}

	reRoleTitle  = regexp.MustCompile(`^(founder|ceo|cto|manager|director|engineer|developer|analyst|consultant|specialist)\s+in`)
	reOccupation = regexp.MustCompile(`^(student|professional|executive)\s+(at|in)`)
)

// DefaultClassifierRules 默认规则集，按序求值，先命中者生效
func DefaultClassifierRules() []ClassifierRule {
	return []ClassifierRule{
		{
			Name: "too_short",
			Match: func(name, lower string) bool {
				// 按字符而非字节计数，两字 CJK 姓名同样视为过短
				return utf8.RuneCountInString(name) < 3
			},
		},
		{
			Name: "anonymous_marker",
			Match: func(name, lower string) bool {
				for _, marker := range anonymousMarkers {
					if strings.Contains(lower, marker) {
						return true
					}
				}
				return false
			},
		},
		{
			// 匿名的"行业/地区"描述："... in the X industry"、"... from Y area/region"
			Name: "industry_description",
			Match: func(name, lower string) bool {
				if strings.Contains(lower, " in the ") && strings.Contains(lower, " industry") {
					return true
				}
				if strings.Contains(lower, " from ") &&
					(strings.Contains(lower, " area") || strings.Contains(lower, " region")) {
					return true
				}
				return strings.Contains(lower, "industry from") ||
					strings.Contains(lower, "services industry") ||
					strings.Contains(lower, "technology industry") ||
					strings.Contains(lower, "financial services") ||
					(strings.Contains(lower, "greater") && strings.Contains(lower, "area"))
			},
		},
		{
			// 以职位头衔开头的匿名描述："Founder in ..."、"Student at ..."
			Name: "role_title",
			Match: func(name, lower string) bool {
				return reRoleTitle.MatchString(lower) || reOccupation.MatchString(lower)
			},
		},
	}
}

// Classifier 将原始展示名映射到访客分类
type Classifier struct {
	rules []ClassifierRule
}

func NewClassifier(rules []ClassifierRule) *Classifier {
	if rules == nil {
		rules = DefaultClassifierRules()
	}
	return &Classifier{rules: rules}
}

// Classify 纯函数，无副作用，确定性
func (c *Classifier) Classify(name string) model.Category {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	for _, rule := range c.rules {
		if rule.Match(name, lower) {
			return model.CategoryPremium
		}
	}
	return model.CategoryFree
}
