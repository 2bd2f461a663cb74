package scraper

import (
	"Linkview/internal/model"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	totalSelector    = "p.text-body-medium-bold.pr1.text-heading-large"
	cardSelector     = ".profile-view-card, .artdeco-list__item"
	nameSelector     = ".profile-view-card__name, .artdeco-entity-lockup__title"
	headlineSelector = ".profile-view-card__headline, .artdeco-entity-lockup__subtitle"
	companySelector  = ".profile-view-card__company, .artdeco-entity-lockup__metadata"
	agoSelector      = ".profile-view-card__timestamp, .member-analytics-addon-summary__list-item-date"
)

var reDigits = regexp.MustCompile(`[^\d]`)

// ParseProfileViews 从渲染后的访客页 HTML 中提取累计总数与访客卡片
// 页面存在新旧两套卡片结构，选择器成对兜底；同一访客可能出现在多个
// 区块中，按四元组去重
func ParseProfileViews(html string) *model.ScrapeResult {
	result := &model.ScrapeResult{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return result
	}

	if totalText := doc.Find(totalSelector).First().Text(); totalText != "" {
		if total, err := strconv.Atoi(reDigits.ReplaceAllString(totalText, "")); err == nil {
			result.TotalViewers = total
		}
	}

	seen := make(map[string]struct{})
	doc.Find(cardSelector).Each(func(i int, sel *goquery.Selection) {
		raw := model.RawViewer{
			Name:      strings.TrimSpace(sel.Find(nameSelector).First().Text()),
			Headline:  strings.TrimSpace(sel.Find(headlineSelector).First().Text()),
			Company:   strings.TrimSpace(sel.Find(companySelector).First().Text()),
			ViewedAgo: strings.TrimSpace(sel.Find(agoSelector).First().Text()),
		}
		if raw.Name == "" && raw.Headline == "" && raw.Company == "" {
			return
		}

		key := raw.Name + "\x00" + raw.Headline + "\x00" + raw.Company + "\x00" + raw.ViewedAgo
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}

		result.Viewers = append(result.Viewers, raw)
	})

	return result
}
