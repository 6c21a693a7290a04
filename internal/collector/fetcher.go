package collector

import "time"

// Fetcher 抽象每一个数据源，T 为该数据源解析出的条目结构
type Fetcher[T any] interface {
	Name() string
	Fetch() ([]T, error)
}

// HackerNewsItem Hacker News 首页的一条新闻
type HackerNewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Score  int    `json:"score"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// YahooNewsItem Yahoo News 首页的一条新闻，没有得分字段
type YahooNewsItem struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

const defaultFetchTimeout = 10 * time.Second

var (
	_ Fetcher[HackerNewsItem] = (*HackerNewsFetcher)(nil)
	_ Fetcher[YahooNewsItem]  = (*YahooNewsFetcher)(nil)
)
