package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/LJTian/NewsGetter/internal/collector"
	"github.com/LJTian/NewsGetter/internal/config"
	"github.com/gin-gonic/gin"
)

// fetchFunc 对某个数据源执行一次抓取
type fetchFunc func(limit int, timeout time.Duration) (any, error)

type Server struct {
	cfg     *config.Config
	sources map[string]fetchFunc
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	s.sources = map[string]fetchFunc{
		"hackernews": func(limit int, timeout time.Duration) (any, error) {
			f := &collector.HackerNewsFetcher{Limit: limit, Timeout: timeout}
			return f.Fetch()
		},
		"yahoo": func(limit int, timeout time.Duration) (any, error) {
			f := &collector.YahooNewsFetcher{
				Limit:         limit,
				Timeout:       timeout,
				SkipTLSVerify: cfg.YahooSkipTLSVerify,
				BypassProxy:   cfg.YahooBypassProxy,
			}
			return f.Fetch()
		},
	}
	return s
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) defaultLimit(source string) int {
	if source == "yahoo" {
		return s.cfg.YahooNewsLimit
	}
	return s.cfg.HackerNewsLimit
}

// listNews 每次请求只抓取一个数据源，不做缓存
func (s *Server) listNews(c *gin.Context) {
	source := c.DefaultQuery("source", "hackernews")
	fetch, ok := s.sources[source]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_source",
			"message": "source must be one of: hackernews, yahoo",
		})
		return
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = s.defaultLimit(source)
	}
	timeout := s.cfg.FetchTimeout
	if secs, err := strconv.Atoi(c.Query("timeout")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	items, err := fetch(limit, timeout)
	if err != nil {
		status, code := errorStatus(err)
		log.Printf("api: fetch %s error: %v", source, err)
		c.JSON(status, gin.H{
			"code":    code,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, collector.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, collector.ErrConnectivity):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, collector.ErrFormat):
		return http.StatusBadGateway, "format_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
