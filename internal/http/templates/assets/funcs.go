// Package assets provides template helpers that resolve static asset URLs
// with content-hash cache busting.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"
)

const hashLen = 10

// Options configures asset-related template helpers.
type Options struct {
	// StaticFS is rooted at the static directory ("css/app.css" resolves inside it).
	StaticFS fs.FS
	// DevMode disables hash caching so edited files get a fresh version on every render.
	DevMode bool
	Logger  *slog.Logger
}

// Resolver maps logical asset names to versioned /static URLs.
type Resolver struct {
	fsys   fs.FS
	dev    bool
	logger *slog.Logger

	mu     sync.RWMutex
	hashes map[string]string
}

// NewResolver creates a Resolver. A nil StaticFS yields unversioned URLs.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		fsys:   opts.StaticFS,
		dev:    opts.DevMode,
		logger: logger,
		hashes: make(map[string]string),
	}
}

// Resolve returns "/static/<name>?v=<hash>", or "/static/<name>" when the file cannot be read.
func (r *Resolver) Resolve(logicalName string) string {
	name := strings.TrimPrefix(path.Clean("/"+logicalName), "/")
	url := "/static/" + name
	if r == nil || r.fsys == nil {
		return url
	}

	if v := r.version(name); v != "" {
		return url + "?v=" + v
	}
	return url
}

func (r *Resolver) version(name string) string {
	if !r.dev {
		r.mu.RLock()
		v, ok := r.hashes[name]
		r.mu.RUnlock()
		if ok {
			return v
		}
	}

	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		r.logger.Warn("static asset not found", slog.String("asset", name), slog.Any("error", err))
		return ""
	}
	sum := sha256.Sum256(data)
	v := hex.EncodeToString(sum[:])[:hashLen]

	if !r.dev {
		r.mu.Lock()
		r.hashes[name] = v
		r.mu.Unlock()
	}
	return v
}

// Funcs returns template helpers for asset resolution.
func Funcs(resolver *Resolver) template.FuncMap {
	return template.FuncMap{
		"asset": resolver.Resolve,
	}
}
