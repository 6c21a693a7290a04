package collector

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// pageRequest 描述一次单页抓取
type pageRequest struct {
	source    string
	url       string
	timeout   time.Duration
	userAgent string
	headers   map[string]string
	transport http.RoundTripper
	// allowedDomains 为空时不限制域名；跳转到列表之外的站点会失败
	allowedDomains []string
}

// fetchPage 用 colly 对目标地址发起一次 GET 并返回完整响应体，不做重试。
// 返回的错误已经按超时 / 连接错误分类。
func fetchPage(req pageRequest) ([]byte, error) {
	u, err := url.Parse(req.url)
	if err != nil {
		return nil, classifyTransportError(req.source, fmt.Errorf("parse url %q: %w", req.url, err))
	}

	var opts []colly.CollectorOption
	if len(req.allowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(append([]string{u.Hostname()}, req.allowedDomains...)...))
	}
	if req.userAgent != "" {
		opts = append(opts, colly.UserAgent(req.userAgent))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(req.timeout)
	// colly 默认把 >=203 都当错误，这里自己判断 2xx
	c.ParseHTTPErrorResponse = true
	if req.transport != nil {
		c.WithTransport(req.transport)
	}

	c.OnRequest(func(r *colly.Request) {
		for k, v := range req.headers {
			r.Headers.Set(k, v)
		}
	})

	var (
		body   []byte
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := c.Visit(req.url); err != nil {
		return nil, classifyTransportError(req.source, err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, classifyTransportError(req.source, fmt.Errorf("unexpected status %d", status))
	}
	return body, nil
}

// resolveAgainst 把相对链接拼到站点根地址上，无法得到绝对地址时返回空串
func resolveAgainst(origin, href string) string {
	base, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if !abs.IsAbs() || abs.Host == "" {
		return ""
	}
	return abs.String()
}

// textOr 返回选中节点去掉首尾空白的文本，节点不存在或文本为空时返回 def
func textOr(sel *goquery.Selection, def string) string {
	if sel.Length() == 0 {
		return def
	}
	if t := strings.TrimSpace(sel.Text()); t != "" {
		return t
	}
	return def
}
