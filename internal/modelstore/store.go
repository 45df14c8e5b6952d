// SPDX-License-Identifier: MIT

// Package modelstore keeps well-known genome-scale models in a local,
// content-addressed directory and downloads them on first use.
//
// Layout under the store root:
//
//	objects/<sha256>.<ext>   model bytes, named by their digest
//	refs/<name>              digest file name of the current object for name
//
// The root is always injected; there is no process-wide store. Concurrent
// requests for the same model share one download.
package modelstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/gemcat/gemerr"
)

// Sentinel errors.
var (
	// ErrUnknownModel is returned for a name missing from the catalog.
	ErrUnknownModel = gemerr.New(gemerr.ErrInvalidInput, "modelstore: unknown model")

	// ErrDownload is returned when the remote answers with a non-2xx status.
	ErrDownload = errors.New("modelstore: download failed")

	// ErrNoRoot is returned by New for an empty root directory.
	ErrNoRoot = gemerr.New(gemerr.ErrConfiguration, "modelstore: empty store directory")
)

// Entry describes one downloadable model.
type Entry struct {
	// Name is the catalog key, e.g. "recon3d".
	Name string

	// URL is fetched with GET.
	URL string

	// Ext is the file extension without the dot; it selects the reader.
	Ext string

	// Transform, if set, rewrites the downloaded bytes before storing.
	Transform func([]byte) []byte
}

// DefaultCatalog lists the models gemcat knows by name.
func DefaultCatalog() []Entry {
	return []Entry{
		{
			Name: "recon3d",
			URL:  "http://bigg.ucsd.edu/api/v2/models/Recon3D/download",
			Ext:  "json",
			// BiGG escapes "." in gene ids as "_AT".
			Transform: func(b []byte) []byte { return []byte(strings.ReplaceAll(string(b), "_AT", ".")) },
		},
		{
			Name: "ratgem",
			URL:  "https://github.com/SysBioChalmers/Rat-GEM/raw/refs/heads/main/model/Rat-GEM.xml",
			Ext:  "xml",
		},
	}
}

// Store is a content-addressed model cache rooted at a directory.
type Store struct {
	root    string
	client  *http.Client
	catalog map[string]Entry
	group   singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient replaces the default client (5 minute timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) {
		if c != nil {
			s.client = c
		}
	}
}

// WithCatalog replaces the default catalog.
func WithCatalog(entries ...Entry) Option {
	return func(s *Store) {
		s.catalog = make(map[string]Entry, len(entries))
		for _, e := range entries {
			s.catalog[e.Name] = e
		}
	}
}

// New returns a Store rooted at root. Directories are created lazily.
func New(root string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrNoRoot
	}
	s := &Store{root: root, client: &http.Client{Timeout: 5 * time.Minute}}
	WithCatalog(DefaultCatalog()...)(s)
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// Names returns the catalog names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.catalog))
	for n := range s.catalog {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Has reports whether name is in the catalog.
func (s *Store) Has(name string) bool {
	_, ok := s.catalog[name]
	return ok
}

// Cached returns the stored path of name without downloading.
func (s *Store) Cached(name string) (string, bool) {
	ref, err := os.ReadFile(s.refPath(name))
	if err != nil {
		return "", false
	}
	p := filepath.Join(s.root, "objects", strings.TrimSpace(string(ref)))
	if _, err = os.Stat(p); err != nil {
		return "", false
	}

	return p, true
}

// Path returns the local file of name, downloading it on first use.
func (s *Store) Path(ctx context.Context, name string) (string, error) {
	e, ok := s.catalog[name]
	if !ok {
		return "", fmt.Errorf("%q (known: %s): %w", name, strings.Join(s.Names(), ", "), ErrUnknownModel)
	}
	if p, ok := s.Cached(name); ok {
		return p, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		// a download that finished while we waited on the ref check
		if p, ok := s.Cached(name); ok {
			return p, nil
		}
		return s.fetch(ctx, e)
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// fetch downloads e, stores the object and points the ref at it.
func (s *Store) fetch(ctx context.Context, e Entry) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.URL, nil)
	if err != nil {
		return "", fmt.Errorf("modelstore: %s: %w", e.Name, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("modelstore: %s: %w", e.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: %s: %w", e.Name, resp.Status, ErrDownload)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("modelstore: %s: %w", e.Name, err)
	}
	if e.Transform != nil {
		body = e.Transform(body)
	}

	sum := sha256.Sum256(body)
	object := hex.EncodeToString(sum[:]) + "." + e.Ext
	path := filepath.Join(s.root, "objects", object)
	if err = writeAtomic(path, body); err != nil {
		return "", err
	}
	if err = writeAtomic(s.refPath(e.Name), []byte(object+"\n")); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Store) refPath(name string) string { return filepath.Join(s.root, "refs", name) }

// Wipe removes every stored object and ref. A missing root is not an error.
func (s *Store) Wipe() error {
	if err := os.RemoveAll(s.root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("modelstore: wipe %s: %w", s.root, err)
	}

	return nil
}

// writeAtomic writes data to a temp file beside path and renames it.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("modelstore: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}

	return nil
}
