package service

import (
	"Linkview/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name string
		in   string
		want model.Category
	}{
		{"plain full name", "John Doe", model.CategoryFree},
		{"name with diacritics", "Łukasz Kowalski", model.CategoryFree},
		{"single word name", "Madonna", model.CategoryFree},
		{"empty string", "", model.CategoryPremium},
		{"too short", "AB", model.CategoryPremium},
		{"two rune cjk name too short", "李明", model.CategoryPremium},
		{"three rune cjk name", "王小明", model.CategoryFree},
		{"someone at marker", "Someone at Google", model.CategoryPremium},
		{"linkedin member marker", "LinkedIn Member", model.CategoryPremium},
		{"marker case insensitive", "SOMEONE AT Microsoft", model.CategoryPremium},
		{"work at marker", "People who work at Amazon", model.CategoryPremium},
		{"found through marker", "Found you through LinkedIn search", model.CategoryPremium},
		{"connection marker", "Someone who has a connection with you", model.CategoryPremium},
		{"industry description", "Someone in the Software industry", model.CategoryPremium},
		{"region description", "A viewer from the Greater Seattle Area", model.CategoryPremium},
		{"services industry phrase", "Works in the Financial Services industry", model.CategoryPremium},
		{"leading role title", "Founder in the Boston area", model.CategoryPremium},
		{"leading occupation", "Student at Stanford University", model.CategoryPremium},
		{"role word mid-name stays free", "Dwight Engineer", model.CategoryFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.in))
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier(nil)

	for i := 0; i < 3; i++ {
		assert.Equal(t, model.CategoryFree, c.Classify("Jane Smith"))
		assert.Equal(t, model.CategoryPremium, c.Classify("Someone at Netflix"))
	}
}

func TestClassifyCustomRules(t *testing.T) {
	c := NewClassifier([]ClassifierRule{
		{
			Name:  "always_anonymous",
			Match: func(name, lower string) bool { return true },
		},
	})
	assert.Equal(t, model.CategoryPremium, c.Classify("John Doe"))
}
