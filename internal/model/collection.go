package model

// 存储集合名
const (
	CollectionViewers     = "viewers"
	CollectionDailyTotals = "daily_totals"
	CollectionHourlyStats = "hourly_stats"
	CollectionScrapeLogs  = "scraping_logs"
	CollectionScreenshots = "screenshots"
)
