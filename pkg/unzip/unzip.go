// Package unzip transparently decompresses gzip-encoded request bodies.
package unzip

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DrWallflower/minibank/pkg/logger"
)

// gzipBody replaces Read on a request body with a decompressing one.
type gzipBody struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func newGzipBody(body io.ReadCloser) (*gzipBody, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, fmt.Errorf("new gzip reader: %w", err)
	}
	return &gzipBody{body: body, zr: zr}, nil
}

func (g *gzipBody) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipBody) Close() error {
	if err := g.body.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return g.zr.Close()
}

// Middleware swaps in a decompressing body when the client declares a
// gzip content encoding.
func Middleware(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				body, err := newGzipBody(r.Body)
				if err != nil {
					logger.Error(err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				r.Body = body
				defer body.Close()
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}
