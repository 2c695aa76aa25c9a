package middleware

import (
	"bytes"
	"io"
	"net/http"
	"org_chart_go/pkg/log"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody 是单条日志中请求体/响应体保留的最大字节数
const maxLoggedBody = 4096

// BodyLogWriter 在写出响应的同时保留一份副本用于日志
type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *BodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// RequestLogger 记录每个请求的方法、路径、状态码和耗时。
// logBodies 为 true 时额外记录请求体（GET 请求除外）和响应体，超出部分截断。
func RequestLogger(logBodies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if logBodies && c.Request.Method != http.MethodGet && c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// 读完后放回去，后续 handler 才能正常绑定
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var blw *BodyLogWriter
		if logBodies {
			blw = &BodyLogWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
			c.Writer = blw
		}

		c.Next()

		fields := []interface{}{
			"latency", time.Since(startTime),
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		}
		if logBodies {
			fields = append(fields,
				"request_body", truncate(requestBody),
				"response_body", truncate(blw.body.Bytes()),
			)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		log.Infow("HTTP request", fields...)
	}
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
