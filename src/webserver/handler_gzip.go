package webserver

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// gzipResponseWriter makes sure the sniffed content type describes the
// uncompressed body, not the gzip stream.
type gzipResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w gzipResponseWriter) Write(b []byte) (int, error) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return w.Writer.Write(b)
}

// gzipHandler compresses the response when the client accepts gzip. The API
// responds with JSON only so every response is worth compressing, there are
// no exceptions for already compressed payloads.
type gzipHandler struct {
	wrapped http.Handler
}

// ServeHTTP satisfies the http.Handler interface
func (gzh gzipHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
		gzh.wrapped.ServeHTTP(writer, req)
		return
	}

	writer.Header().Set("Content-Encoding", "gzip")
	gz := gzip.NewWriter(writer)
	defer gz.Close()
	gzr := gzipResponseWriter{Writer: gz, ResponseWriter: writer}
	gzh.wrapped.ServeHTTP(gzr, req)
}

// NewGzipHandler returns a handler which gzips anything written by the
// wrapped handler. Must wrap the whole router so that no response bypasses
// the compression.
func NewGzipHandler(handler http.Handler) http.Handler {
	return &gzipHandler{
		wrapped: handler,
	}
}
