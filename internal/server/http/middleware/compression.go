package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// maxDecompressedBody caps inflated request bodies.
const maxDecompressedBody = 1 << 20

// DecompressRequest transparently handles gzip encoded requests.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(c.GetHeader("Content-Encoding"))
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), maxDecompressedBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

// CompressResponse gzips responses except for streaming paths, which must flush
// every event as it is written.
func CompressResponse(streamingPaths ...string) gin.HandlerFunc {
	return ginGzip.Gzip(ginGzip.DefaultCompression, ginGzip.WithExcludedPaths(streamingPaths))
}
