package api

import (
	"bytes"
	"io"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSMiddleware allows any origin when origins is empty or contains "*".
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Accept", TraceIDHeader)
	cfg.ExposeHeaders = []string{TraceIDHeader}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// TraceIDMiddleware reuses the caller's X-Trace-ID or mints a new one.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set(traceIDKey, traceID)
		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Next()
	}
}

func TraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}

// RequestLoggingMiddleware logs all incoming requests
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			// Restore the body for the handler
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		log.Printf("=== INCOMING REQUEST ===")
		log.Printf("Trace: %s", TraceID(c))
		log.Printf("Method: %s", c.Request.Method)
		log.Printf("Path: %s", c.Request.URL.Path)
		if len(bodyBytes) > 0 {
			log.Printf("Body: %s", string(bodyBytes))
		}
		log.Printf("========================")

		c.Next()

		log.Printf("=== RESPONSE ===")
		log.Printf("Trace: %s Status: %d Latency: %s", TraceID(c), c.Writer.Status(), time.Since(start))
		log.Printf("================")
	}
}
