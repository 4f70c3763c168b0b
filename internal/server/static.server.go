package serverApp

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	types "partner-funnel/internal/common/type"
	"partner-funnel/internal/pkg/helper"

	"github.com/gin-gonic/gin"
)

var reservedPrefixes = []string{"/api", "/health", "/static-health"}

// SPAHandler serves files from dir and falls back to index.html for
// client-side routes. Reserved prefixes get the JSON 404 envelope.
func SPAHandler(dir string) gin.HandlerFunc {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	index := filepath.Join(root, "index.html")

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		method := c.Request.Method

		if isReserved(p) || (method != http.MethodGet && method != http.MethodHead) {
			notFound(c)
			return
		}

		target, ok := resolve(root, p)
		if !ok {
			notFound(c)
			return
		}
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			c.File(target)
			return
		}

		if _, err := os.Stat(index); err != nil {
			notFound(c)
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.File(index)
	}
}

// resolve maps a URL path into root. ok is false when the result escapes root.
func resolve(root, urlPath string) (string, bool) {
	if strings.Contains(urlPath, "\x00") {
		return "", false
	}
	cleaned := path.Clean("/" + urlPath)
	target := filepath.Join(root, filepath.FromSlash(cleaned))

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}

func isReserved(p string) bool {
	for _, prefix := range reservedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func notFound(c *gin.Context) {
	res := helper.ParseResponse(&types.Response{Code: http.StatusNotFound, Message: "Route not found"})
	if send, ok := c.Get("send"); ok {
		send.(func(r *types.Response))(res)
		return
	}
	c.AbortWithStatusJSON(res.Code, helper.ToResponseAPI(res))
}
