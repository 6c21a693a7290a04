package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string

	BasicAuthUser string
	BasicAuthPass string

	HackerNewsLimit int
	YahooNewsLimit  int
	FetchTimeout    time.Duration

	// Yahoo 的反爬折中：默认关闭证书校验并绕过环境代理
	YahooSkipTLSVerify bool
	YahooBypassProxy   bool
}

func Load() *Config {
	cfg := &Config{
		AppPort:            getEnv("APP_PORT", "9000"),
		BasicAuthUser:      getEnv("APP_BASIC_USER", ""),
		BasicAuthPass:      getEnv("APP_BASIC_PASS", ""),
		HackerNewsLimit:    getEnvInt("HN_LIMIT", 30),
		YahooNewsLimit:     getEnvInt("YAHOO_LIMIT", 20),
		FetchTimeout:       time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		YahooSkipTLSVerify: getEnvBool("YAHOO_SKIP_TLS_VERIFY", true),
		YahooBypassProxy:   getEnvBool("YAHOO_BYPASS_PROXY", true),
	}

	log.Printf("config loaded: port=%s hn_limit=%d yahoo_limit=%d timeout=%s",
		cfg.AppPort, cfg.HackerNewsLimit, cfg.YahooNewsLimit, cfg.FetchTimeout)
	if cfg.YahooSkipTLSVerify {
		log.Printf("warn: TLS certificate verification is disabled for Yahoo News requests")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt 只接受正整数，其余情况回退默认值
func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return b
}
