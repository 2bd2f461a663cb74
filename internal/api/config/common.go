package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// StorageConfig 存储后端配置
// Backend 可选 auto / mongo / file：auto 优先连接 Mongo，失败后降级到本地文件存储
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	DataDir string `mapstructure:"data_dir"`
}

// ScraperConfig 抓取器配置
type ScraperConfig struct {
	ProfileURL      string `mapstructure:"profile_url"`
	UserAgent       string `mapstructure:"user_agent"`
	LiAt            string `mapstructure:"li_at"`
	JSessionID      string `mapstructure:"jsessionid"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	Screenshot      bool   `mapstructure:"screenshot"`
	DedupWindowDays int    `mapstructure:"dedup_window_days"`
}

// ScheduleConfig 定时抓取配置
// Cadence 可选 hourly / daily / weekly / disabled
type ScheduleConfig struct {
	Cadence  string `mapstructure:"cadence"`
	CronSpec string `mapstructure:"cron_spec"`
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "linkview"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "auto"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "./data"
	}
	if c.Scraper.ProfileURL == "" {
		c.Scraper.ProfileURL = "https://www.linkedin.com/me/profile-views/"
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/138.0.0.0 Safari/537.36"
	}
	if c.Scraper.TimeoutSeconds == 0 {
		c.Scraper.TimeoutSeconds = 120
	}
	if c.Scraper.DedupWindowDays == 0 {
		c.Scraper.DedupWindowDays = 7
	}
	if c.Schedule.Cadence == "" {
		c.Schedule.Cadence = "hourly"
	}
	if c.Schedule.CronSpec == "" {
		c.Schedule.CronSpec = "0 0 * * * *"
	}
}
