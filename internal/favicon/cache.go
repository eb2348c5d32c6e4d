// Package favicon keeps a disk cache of one favicon image per visited domain.
package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/browserhist/internal/logging"
)

const (
	DefaultEndpoint  = "https://www.google.com/s2/favicons"
	DefaultSize      = 32
	DefaultTimeout   = 2 * time.Second
	DefaultUserAgent = "Mozilla/5.0"

	// maxIconBytes caps a single download.
	maxIconBytes = 1 << 20
)

// Options configures a Cache. Zero fields take the defaults above.
type Options struct {
	Dir       string
	Endpoint  string
	Size      int
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// Cache maps URLs to cached favicon files. The filesystem is the only index:
// a file at Dir/<key>.png means the domain is resolved. Failed downloads are
// not recorded, so the next lookup retries.
type Cache struct {
	dir       string
	endpoint  string
	size      int
	userAgent string
	client    *http.Client
	log       logging.Logger
}

// New creates the cache directory if needed and returns a Cache.
func New(opts Options, log logging.Logger) (*Cache, error) {
	if opts.Dir == "" {
		return nil, errors.New("favicon cache directory is required")
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create favicon cache directory: %w", err)
	}
	if log == nil {
		log = logging.Nop()
	}

	c := &Cache{
		dir:       opts.Dir,
		endpoint:  opts.Endpoint,
		size:      opts.Size,
		userAgent: opts.UserAgent,
		client:    opts.Client,
		log:       log,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.size <= 0 {
		c.size = DefaultSize
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.client = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Domain extracts the cache domain of rawURL: the host with optional port,
// without a leading "www.". Scheme-less input such as "example.com/page" uses
// its first path segment.
func Domain(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	domain := u.Host
	if domain == "" {
		domain = strings.SplitN(u.Path, "/", 2)[0]
	}
	domain = strings.TrimPrefix(domain, "www.")
	return domain, domain != ""
}

var keyReplacer = strings.NewReplacer(":", "_", "/", "_", `\`, "_")

// Key turns a domain into a filename-safe cache key.
func Key(domain string) string {
	return keyReplacer.Replace(domain)
}

// Path returns where the favicon for domain is stored.
func (c *Cache) Path(domain string) string {
	return filepath.Join(c.dir, Key(domain)+".png")
}

// Resolve returns the local favicon path for rawURL, downloading it on the
// first miss. It never fails loudly: any problem yields ("", false).
func (c *Cache) Resolve(ctx context.Context, rawURL string) (string, bool) {
	domain, ok := Domain(rawURL)
	if !ok {
		c.log.Debug("no domain in url", logging.String("url", rawURL))
		return "", false
	}

	path := c.Path(domain)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}

	data, err := c.download(ctx, domain)
	if err != nil {
		c.log.Debug("could not download favicon",
			logging.String("domain", domain),
			logging.Duration("timeout", c.client.Timeout),
			logging.Error(err),
		)
		return "", false
	}

	if err := c.write(path, data); err != nil {
		c.log.Warn("could not cache favicon", logging.String("domain", domain), logging.Error(err))
		return "", false
	}

	c.log.Info("downloaded favicon", logging.String("domain", domain), logging.Int("bytes", len(data)))
	return path, true
}

func (c *Cache) download(ctx context.Context, domain string) ([]byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid favicon endpoint: %w", err)
	}
	q := u.Query()
	q.Set("domain", domain)
	q.Set("sz", strconv.Itoa(c.size))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxIconBytes {
		return nil, fmt.Errorf("favicon larger than %d bytes", maxIconBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("empty favicon response")
	}
	return data, nil
}

// write stores data via a temp file and rename so readers never observe a
// partial image. Concurrent writers for one domain race harmlessly.
func (c *Cache) write(path string, data []byte) error {
	tmp := filepath.Join(c.dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return err
	}
	return nil
}

// Clear deletes every cached image. A file that cannot be removed is logged
// and skipped; the returned error joins all such failures.
func (c *Cache) Clear() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.png"))
	if err != nil {
		return 0, fmt.Errorf("list favicon cache: %w", err)
	}

	removed := 0
	var errs []error
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			c.log.Error("could not remove cached favicon", logging.String("path", m), logging.Error(err))
			errs = append(errs, err)
			continue
		}
		removed++
	}

	c.log.Info("favicon cache cleared", logging.Int("removed", removed))
	return removed, errors.Join(errs...)
}

// Size reports the number of cached images and their total size in bytes.
func (c *Cache) Size() (int, int64, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.png"))
	if err != nil {
		return 0, 0, err
	}
	var total int64
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil {
			total += info.Size()
		}
	}
	return len(matches), total, nil
}
