package main

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/LJTian/NewsGetter/internal/api"
	"github.com/LJTian/NewsGetter/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时直接使用环境变量
	_ = godotenv.Load()
	cfg := config.Load()

	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(cfg)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 新闻接口需要 APP_BASIC_USER / APP_BASIC_PASS，/health 例外
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "NewsGetter"
	wantUser, wantPass := []byte(user), []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), wantUser) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), wantPass) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
