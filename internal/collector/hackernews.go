package collector

import (
	"bytes"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Hacker News 首页的页面约定，页面改版时只需调整这里
const (
	hnSourceName     = "hackernews"
	hnOrigin         = "https://news.ycombinator.com/"
	hnHost           = "news.ycombinator.com"
	hnDefaultLimit   = 30
	hnItemPathPrefix = "item?id="
	hnUnknown        = "unknown"

	hnStorySelector   = "tr.athing"
	hnTitleSelector   = "span.titleline"
	hnMetaRowSelector = "tr"
	hnSubtextSelector = "td.subtext"
	hnScoreSelector   = "span.score"
	hnAuthorSelector  = "a.hnuser"
	hnAgeLinkSelector = "span.age a"
)

// HackerNewsFetcher 抓取 Hacker News 首页并按得分倒序返回。
// 零值可直接使用：Limit 默认 30，Timeout 默认 10 秒，BaseURL 默认官方首页。
type HackerNewsFetcher struct {
	Limit   int
	Timeout time.Duration
	// BaseURL 仅用于镜像或测试，相对链接始终按官方站点补全
	BaseURL string
}

func (h *HackerNewsFetcher) Name() string {
	return hnSourceName
}

func (h *HackerNewsFetcher) Fetch() ([]HackerNewsItem, error) {
	log.Println("fetch Hacker News front page...")

	limit := h.Limit
	if limit <= 0 {
		limit = hnDefaultLimit
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	// 自定义 BaseURL 时不限制跳转域名
	target := h.BaseURL
	var domains []string
	if target == "" {
		target = hnOrigin
		domains = []string{hnHost}
	}

	body, err := fetchPage(pageRequest{
		source:         hnSourceName,
		url:            target,
		timeout:        timeout,
		allowedDomains: domains,
	})
	if err != nil {
		log.Printf("fetch Hacker News failed: %v", err)
		return nil, err
	}

	items, err := parseHackerNews(bytes.NewReader(body), limit)
	if err != nil {
		log.Printf("parse Hacker News failed: %v", err)
		return nil, formatError(hnSourceName, err)
	}

	log.Printf("fetch Hacker News got %d items", len(items))
	return items, nil
}

// parseHackerNews 解析前 limit 个新闻行，结果按得分倒序（同分保持页面顺序）
func parseHackerNews(r io.Reader, limit int) ([]HackerNewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	rows := doc.Find(hnStorySelector)
	if rows.Length() > limit {
		rows = rows.Slice(0, limit)
	}

	items := make([]HackerNewsItem, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		if item, ok := parseHackerNewsRow(row); ok {
			items = append(items, item)
		}
	})

	if len(items) == 0 {
		return nil, errNoItems
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}

// parseHackerNewsRow 标题在新闻行里，得分、作者、时间在紧随其后的兄弟行里
func parseHackerNewsRow(row *goquery.Selection) (HackerNewsItem, bool) {
	titleline := row.Find(hnTitleSelector).First()
	if titleline.Length() == 0 {
		return HackerNewsItem{}, false
	}
	link := titleline.Find("a").First()
	if link.Length() == 0 {
		return HackerNewsItem{}, false
	}

	title := strings.TrimSpace(link.Text())
	if title == "" {
		return HackerNewsItem{}, false
	}

	href, _ := link.Attr("href")
	itemURL := hackerNewsURL(strings.TrimSpace(href))
	if itemURL == "" {
		return HackerNewsItem{}, false
	}

	metaRow := row.NextAllFiltered(hnMetaRowSelector).First()
	if metaRow.Length() == 0 {
		return HackerNewsItem{}, false
	}
	subtext := metaRow.Find(hnSubtextSelector).First()
	if subtext.Length() == 0 {
		return HackerNewsItem{}, false
	}

	return HackerNewsItem{
		Title:  title,
		URL:    itemURL,
		Score:  parseScore(subtext.Find(hnScoreSelector).First().Text()),
		Author: textOr(subtext.Find(hnAuthorSelector).First(), hnUnknown),
		Date:   textOr(subtext.Find(hnAgeLinkSelector).First(), hnUnknown),
	}, true
}

// hackerNewsURL 站内讨论页（item?id=）等相对链接补全为绝对地址
func hackerNewsURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, hnItemPathPrefix) {
		return hnOrigin + href
	}
	return resolveAgainst(hnOrigin, href)
}

// parseScore 解析 "123 points" 开头的数字，缺失或无法解析时记 0
func parseScore(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
