package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/LJTian/NewsGetter/internal/collector"
	"github.com/LJTian/NewsGetter/internal/config"
	"github.com/joho/godotenv"
)

// 一个仅执行一次抓取的命令行入口：抓取单个数据源并打印结果
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	source := flag.String("source", "hackernews", "data source: hackernews | yahoo")
	limit := flag.Int("limit", 0, "number of items (default from HN_LIMIT / YAHOO_LIMIT)")
	timeout := flag.Int("timeout", 0, "request timeout in seconds (default from FETCH_TIMEOUT_SECONDS)")
	flag.Parse()

	d := cfg.FetchTimeout
	if *timeout > 0 {
		d = time.Duration(*timeout) * time.Second
	}

	if err := run(os.Stdout, cfg, *source, *limit, d); err != nil {
		log.Printf("collect %s failed: %v", *source, err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg *config.Config, source string, limit int, timeout time.Duration) error {
	switch source {
	case "hackernews":
		if limit <= 0 {
			limit = cfg.HackerNewsLimit
		}
		items, err := (&collector.HackerNewsFetcher{Limit: limit, Timeout: timeout}).Fetch()
		if err != nil {
			return err
		}
		printHackerNews(w, items)
	case "yahoo":
		if limit <= 0 {
			limit = cfg.YahooNewsLimit
		}
		f := &collector.YahooNewsFetcher{
			Limit:         limit,
			Timeout:       timeout,
			SkipTLSVerify: cfg.YahooSkipTLSVerify,
			BypassProxy:   cfg.YahooBypassProxy,
		}
		items, err := f.Fetch()
		if err != nil {
			return err
		}
		printYahooNews(w, items)
	default:
		return fmt.Errorf("unknown source %q", source)
	}
	return nil
}

func printHackerNews(w io.Writer, items []collector.HackerNewsItem) {
	fmt.Fprintf(w, "got %d items:\n\n", len(items))
	for i, it := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, it.Title)
		fmt.Fprintf(w, "   URL: %s\n", it.URL)
		fmt.Fprintf(w, "   score: %d | author: %s | date: %s\n\n", it.Score, it.Author, it.Date)
	}
}

func printYahooNews(w io.Writer, items []collector.YahooNewsItem) {
	fmt.Fprintf(w, "got %d items:\n\n", len(items))
	for i, it := range items {
		fmt.Fprintf(w, "%d. %s\n", i+1, it.Title)
		fmt.Fprintf(w, "   URL: %s\n", it.URL)
		fmt.Fprintf(w, "   author: %s | date: %s\n\n", it.Author, it.Date)
	}
}
