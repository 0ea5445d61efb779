package render

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"
)

// Preview port range; the first free port wins.
const (
	previewPortStart = 9000
	previewPortEnd   = 9100
)

// PreviewServer serves a directory of exported SVG/PNG files locally so a
// browser can be pointed at the latest render.
type PreviewServer struct {
	dir    string
	port   int
	server *http.Server
}

// NewPreviewServer creates a preview server for the given export
// directory, picking a free port in the preview range.
func NewPreviewServer(dir string) (*PreviewServer, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("export directory: %w", err)
	}
	port, err := findFreePort(previewPortStart, previewPortEnd)
	if err != nil {
		return nil, err
	}
	return &PreviewServer{dir: dir, port: port}, nil
}

// URL returns the server's address.
func (p *PreviewServer) URL() string {
	return fmt.Sprintf("http://localhost:%d", p.port)
}

// Start serves until the listener fails or Stop is called. Exported files
// are served with no-cache headers so a re-export shows up on reload.
func (p *PreviewServer) Start() error {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(p.dir))
	mux.Handle("/", noCache(files))

	p.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", p.port),
		Handler: mux,
	}
	return p.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (p *PreviewServer) Stop() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func findFreePort(start, end int) (int, error) {
	for port := start; port <= end; port++ {
		l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			l.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", start, end)
}
