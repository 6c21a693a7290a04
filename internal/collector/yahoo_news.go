package collector

import (
	"bytes"
	"crypto/tls"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Yahoo News 首页的页面约定，页面改版时只需调整这里
const (
	yahooSourceName    = "yahoo"
	yahooHomeURL       = "https://news.yahoo.com/"
	yahooOrigin        = "https://news.yahoo.com"
	yahooDefaultLimit  = 20
	yahooOverFetch     = 2
	yahooDefaultAuthor = "Yahoo News"
	yahooDefaultDate   = "recent"

	yahooItemSelector      = "li.stream-item"
	yahooTitleSelector     = `h3[data-test-locator="stream-item-title"]`
	yahooPublisherSelector = `span[data-test-locator="stream-item-publisher"]`
	yahooReadTimeSelector  = `span[data-test-locator="stream-read-time"]`

	yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// 首页会 301 跳转到 www.yahoo.com/news/
var yahooDomains = []string{"news.yahoo.com", "www.yahoo.com"}

// 只有这些路径下的链接才算新闻正文
var yahooArticleMarkers = []string{"/news/", "/articles/"}

// 模拟浏览器请求头，降低被反爬拦截的概率
var yahooBrowserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// YahooNewsFetcher 抓取 Yahoo News 首页，保持页面顺序，只保留新闻正文链接。
//
// SkipTLSVerify 和 BypassProxy 是针对该站反爬策略的折中：前者关闭证书校验，
// 会让请求暴露在中间人攻击下，只应在明确需要时开启。
type YahooNewsFetcher struct {
	Limit   int
	Timeout time.Duration
	// BaseURL 仅用于镜像或测试，相对链接始终按官方站点补全
	BaseURL       string
	SkipTLSVerify bool
	BypassProxy   bool
}

func (y *YahooNewsFetcher) Name() string {
	return yahooSourceName
}

func (y *YahooNewsFetcher) Fetch() ([]YahooNewsItem, error) {
	log.Println("fetch Yahoo News front page...")

	limit := y.Limit
	if limit <= 0 {
		limit = yahooDefaultLimit
	}
	timeout := y.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	target := y.BaseURL
	var domains []string
	if target == "" {
		target = yahooHomeURL
		domains = yahooDomains
	}

	// 每次调用独立的连接池，结束即释放
	transport := y.transport()
	defer transport.CloseIdleConnections()

	body, err := fetchPage(pageRequest{
		source:         yahooSourceName,
		url:            target,
		timeout:        timeout,
		userAgent:      yahooUserAgent,
		headers:        yahooBrowserHeaders,
		transport:      transport,
		allowedDomains: domains,
	})
	if err != nil {
		log.Printf("fetch Yahoo News failed: %v", err)
		return nil, err
	}

	items, err := parseYahooNews(bytes.NewReader(body), limit)
	if err != nil {
		log.Printf("parse Yahoo News failed: %v", err)
		return nil, formatError(yahooSourceName, err)
	}

	log.Printf("fetch Yahoo News got %d items", len(items))
	return items, nil
}

func (y *YahooNewsFetcher) transport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if y.BypassProxy {
		t.Proxy = nil
	}
	if y.SkipTLSVerify {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return t
}

// parseYahooNews 多扫描一倍的条目以抵消过滤掉的部分，凑够 limit 条即停止
func parseYahooNews(r io.Reader, limit int) ([]YahooNewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	candidates := doc.Find(yahooItemSelector)
	if maxScan := limit * yahooOverFetch; candidates.Length() > maxScan {
		candidates = candidates.Slice(0, maxScan)
	}

	items := make([]YahooNewsItem, 0, limit)
	candidates.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if item, ok := parseYahooItem(sel); ok {
			items = append(items, item)
		}
		return len(items) < limit
	})

	if len(items) == 0 {
		return nil, errNoItems
	}
	return items, nil
}

func parseYahooItem(sel *goquery.Selection) (YahooNewsItem, bool) {
	heading := sel.Find(yahooTitleSelector).First()
	if heading.Length() == 0 {
		return YahooNewsItem{}, false
	}
	link := heading.Find("a").First()
	if link.Length() == 0 {
		return YahooNewsItem{}, false
	}

	title := strings.TrimSpace(link.Text())
	href, _ := link.Attr("href")
	href = strings.TrimSpace(href)
	if title == "" || href == "" {
		return YahooNewsItem{}, false
	}

	articleURL, ok := yahooArticleURL(href)
	if !ok {
		return YahooNewsItem{}, false
	}

	return YahooNewsItem{
		Title:  title,
		URL:    articleURL,
		Author: textOr(sel.Find(yahooPublisherSelector).First(), yahooDefaultAuthor),
		Date:   textOr(sel.Find(yahooReadTimeSelector).First(), yahooDefaultDate),
	}, true
}

// yahooArticleURL 补全站内相对链接，并确认是新闻正文页
func yahooArticleURL(href string) (string, bool) {
	if strings.HasPrefix(href, "/") {
		href = yahooOrigin + href
	}
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	for _, marker := range yahooArticleMarkers {
		if strings.Contains(href, marker) {
			return href, true
		}
	}
	return "", false
}
