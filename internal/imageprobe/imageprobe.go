// Package imageprobe reports the pixel size of panel bitmaps without
// decoding them. Organs reference the same bitmap from many elements, so
// results are cached.
package imageprobe

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
)

// DefaultCacheSize bounds the number of cached entries.
const DefaultCacheSize = 1024

type cacheKey struct {
	path    string
	size    int64
	modTime time.Time
}

type dims struct {
	width, height int
}

// Prober reads image headers and caches the result per file version.
type Prober struct {
	mu    sync.Mutex
	cache *lru.Cache[cacheKey, dims]
	hits  int
	reads int
}

// New returns a prober holding up to size entries (DefaultCacheSize if <= 0).
func New(size int) *Prober {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, dims](size)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Prober{cache: cache}
}

// Dimensions returns the width and height of the image at path.
func (p *Prober) Dimensions(path string) (int, int, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, 0, err
	}
	key := cacheKey{path: path, size: st.Size(), modTime: st.ModTime()}

	p.mu.Lock()
	if d, ok := p.cache.Get(key); ok {
		p.hits++
		p.mu.Unlock()
		return d.width, d.height, nil
	}
	p.mu.Unlock()

	d, err := decodeConfig(path)
	if err != nil {
		return 0, 0, err
	}

	p.mu.Lock()
	p.reads++
	p.cache.Add(key, d)
	p.mu.Unlock()
	return d.width, d.height, nil
}

// Stats returns the number of cache hits and file reads so far.
func (p *Prober) Stats() (hits, reads int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.reads
}

func decodeConfig(path string) (dims, error) {
	f, err := os.Open(path)
	if err != nil {
		return dims{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return dims{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return dims{}, fmt.Errorf("decode %s: empty %s image", path, format)
	}
	return dims{width: cfg.Width, height: cfg.Height}, nil
}
