package scraper

import (
	"Linkview/internal/api/config"
	"Linkview/internal/model"
	"Linkview/internal/service"
	"context"
	"crypto/tls"
	log "log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
)

const cookieDomain = ".www.linkedin.com"

// LinkedInScraper 基于无头浏览器的访客页抓取器
// 浏览器进程按需启动，每次抓取使用独立标签页
type LinkedInScraper struct {
	cfg        config.ScraperConfig
	httpClient *resty.Client
	browserCtx context.Context
	cancel     context.CancelFunc
}

func NewLinkedInScraper(cfg config.ScraperConfig) *LinkedInScraper {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	client := resty.New().
		SetTimeout(20*time.Second).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}).
		SetHeader("User-Agent", cfg.UserAgent).
		SetRedirectPolicy(resty.NoRedirectPolicy())

	return &LinkedInScraper{
		cfg:        cfg,
		httpClient: client,
		browserCtx: browserCtx,
		cancel:     cancel,
	}
}

// Scrape 渲染访客页并解析累计总数与访客卡片，按配置附带整页截图
func (s *LinkedInScraper) Scrape(ctx context.Context) (*model.ScrapeResult, error) {
	if err := s.precheckSession(ctx); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	tabCtx, timeoutCancel := context.WithTimeout(tabCtx, timeout)
	defer timeoutCancel()

	var (
		currentURL string
		html       string
		screenshot []byte
	)

	actions := []chromedp.Action{
		s.setSessionCookies(),
		chromedp.Navigate(s.cfg.ProfileURL),
		chromedp.WaitReady(`body`),
		// 访客卡片由前端异步渲染，留出加载窗口
		chromedp.Sleep(5 * time.Second),
		chromedp.Location(&currentURL),
		chromedp.OuterHTML("html", &html),
	}
	if s.cfg.Screenshot {
		actions = append(actions, chromedp.CaptureScreenshot(&screenshot))
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, err
	}

	if isLoginURL(currentURL) {
		log.WarnContext(ctx, "redirected to login page, session cookies rejected", "url", currentURL)
		return nil, service.ErrSessionExpired
	}

	result := ParseProfileViews(html)
	result.Screenshot = screenshot

	log.InfoContext(ctx, "profile views page scraped",
		"total_viewers", result.TotalViewers,
		"cards", len(result.Viewers),
		"screenshot", len(screenshot) > 0,
	)
	return result, nil
}

// precheckSession 在启动浏览器前以轻量请求验证会话 Cookie 仍然有效
func (s *LinkedInScraper) precheckSession(ctx context.Context) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: "li_at", Value: s.cfg.LiAt}).
		SetCookie(&http.Cookie{Name: "JSESSIONID", Value: s.cfg.JSessionID}).
		Get("https://www.linkedin.com/feed/")
	if err != nil && resp == nil {
		// 网络失败不等于会话过期，交给浏览器阶段重试
		log.WarnContext(ctx, "session precheck request failed", "err", err)
		return nil
	}

	code := resp.StatusCode()
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return service.ErrSessionExpired
	}
	if code >= 300 && code < 400 && isLoginURL(resp.Header().Get("Location")) {
		return service.ErrSessionExpired
	}
	return nil
}

func (s *LinkedInScraper) setSessionCookies() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		expires := cdp.TimeSinceEpoch(time.Now().Add(30 * 24 * time.Hour))
		cookies := map[string]string{
			"li_at":      s.cfg.LiAt,
			"JSESSIONID": s.cfg.JSessionID,
		}
		for name, value := range cookies {
			if value == "" {
				continue
			}
			err := network.SetCookie(name, value).
				WithDomain(cookieDomain).
				WithPath("/").
				WithSecure(true).
				WithHTTPOnly(true).
				WithExpires(&expires).
				Do(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func isLoginURL(u string) bool {
	return strings.Contains(u, "/login") ||
		strings.Contains(u, "/checkpoint") ||
		strings.Contains(u, "/uas/authenticate")
}

func (s *LinkedInScraper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
