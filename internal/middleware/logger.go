package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

// LoggerConfig controls what the request logger emits
type LoggerConfig struct {
	EnableColors bool
	SkipPaths    []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors: true,
		SkipPaths:    []string{"/health", "/metrics", "/ping"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

// LoggerWithConfig logs one line per request with method, path, status,
// latency and the resolved user when one is present.
func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		userID := c.GetString("userID")

		var methodColor, statusColor, pathColor, grayColor, resetColor string
		if config.EnableColors {
			methodColor = getMethodColor(method)
			statusColor = getStatusColor(status)
			pathColor = colorBlue
			grayColor = colorGray
			resetColor = colorReset
		}

		line := strings.Builder{}
		line.WriteString(statusColor)
		line.WriteString(statusLabel(status))
		line.WriteString(resetColor)
		line.WriteString("  ")
		line.WriteString(methodColor)
		line.WriteString(method)
		line.WriteString(resetColor)
		line.WriteString(" ")
		line.WriteString(pathColor + path + resetColor)
		if query := c.Request.URL.RawQuery; query != "" {
			line.WriteString(grayColor + "?" + query + resetColor)
		}

		log.Printf("%s %s%v%s", line.String(), grayColor, latency, resetColor)
		if userID != "" {
			log.Printf("%s    user: %s%s", grayColor, resetColor, userID)
		}
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "OK "
	case status >= 300 && status < 400:
		return "RDR"
	case status >= 400 && status < 500:
		return "ERR"
	case status >= 500:
		return "FTL"
	default:
		return "???"
	}
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return colorGreen
	case "POST":
		return colorBlue
	case "PUT":
		return colorYellow
	case "DELETE":
		return colorRed
	case "PATCH":
		return colorPurple
	default:
		return colorWhite
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 300 && status < 400:
		return colorCyan
	case status >= 400 && status < 500:
		return colorYellow
	case status >= 500:
		return colorRed
	default:
		return colorWhite
	}
}
