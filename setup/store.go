// store.go - On-disk SRS cache with an explicit store object.
//
// The store replaces any notion of a global parameter cache: every call site
// receives a *Store carrying the cache directory and policy, which keeps
// cache scope and test isolation explicit. Writes go through a temp file and
// an atomic rename so readers never observe a partially written entry, and an
// abandoned generation leaves nothing behind.

package setup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/findora-crypto/zei/pcs"
)

// ErrCapacityTooSmall is returned when every cached SRS is smaller than the
// requested capacity and the store was not built with WithRegenerate. A fresh
// generation would silently change the trusted setup in use, so it requires
// explicit opt-in.
var ErrCapacityTooSmall = errors.New("setup: cached srs capacity below requested degree")

const curveName = "bls12381"

// Store manages persisted SRS files under a single directory.
type Store struct {
	dir             string
	allowRegenerate bool
	log             zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRegenerate lets LoadOrGenerate create a bigger SRS when the cache only
// holds smaller capacities. Commitments issued against the old entries stay
// valid since existing files are never overwritten.
func WithRegenerate() StoreOption {
	return func(st *Store) { st.allowRegenerate = true }
}

// WithLogger sets the store's logger. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(st *Store) { st.log = log }
}

// NewStore opens (creating if needed) the cache directory at dir.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("setup: creating cache directory: %w", err)
	}
	st := &Store{
		dir:   dir,
		log:   zerolog.Nop(),
		locks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st, nil
}

// CacheKey returns the file name an SRS of capacity n is stored under. The
// key carries the curve identity and the capacity.
func (st *Store) CacheKey(n int) string {
	return fmt.Sprintf("srs-%s-%d.bin", curveName, n)
}

// keyLock returns the mutex serializing generate-and-write for one cache key.
func (st *Store) keyLock(key string) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()
	lk, ok := st.locks[key]
	if !ok {
		lk = &sync.Mutex{}
		st.locks[key] = lk
	}
	return lk
}

// LoadOrGenerate returns an SRS of capacity exactly n, reusing any cached
// entry of capacity >= n (truncated down) before falling back to generation.
// A corrupt or unreadable cache entry is an error, never a silent
// regeneration: previously issued commitments implicitly rely on a fixed SRS.
func (st *Store) LoadOrGenerate(n int, rng io.Reader) (*pcs.SRS, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: requested capacity %d", pcs.ErrParameter, n)
	}

	key := st.CacheKey(n)
	lk := st.keyLock(key)
	lk.Lock()
	defer lk.Unlock()

	cached, cachedCap, err := st.findCached(n)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		srs, err := st.load(cached, cachedCap)
		if err != nil {
			return nil, err
		}
		st.log.Debug().Str("file", cached).Int("capacity", cachedCap).Int("requested", n).Msg("srs cache hit")
		if cachedCap == n {
			return srs, nil
		}
		return srs.Truncate(n)
	}

	st.log.Info().Int("capacity", n).Msg("srs cache miss, generating")
	srs, err := pcs.GenerateSRS(n, rng)
	if err != nil {
		return nil, err
	}
	if err := st.persist(key, srs); err != nil {
		return nil, err
	}
	return srs, nil
}

// findCached scans the cache directory for the smallest entry of capacity
// >= n. When only smaller entries exist, the conservative policy applies.
func (st *Store) findCached(n int) (path string, capacity int, err error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return "", 0, fmt.Errorf("setup: reading cache directory: %w", err)
	}

	prefix := fmt.Sprintf("srs-%s-", curveName)
	var capacities []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".bin") {
			continue
		}
		c, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".bin"))
		if err != nil || c < 1 {
			continue
		}
		capacities = append(capacities, c)
	}
	if len(capacities) == 0 {
		return "", 0, nil
	}

	sort.Ints(capacities)
	for _, c := range capacities {
		if c >= n {
			return filepath.Join(st.dir, st.CacheKey(c)), c, nil
		}
	}
	if !st.allowRegenerate {
		return "", 0, fmt.Errorf("%w: largest cached capacity %d, requested %d",
			ErrCapacityTooSmall, capacities[len(capacities)-1], n)
	}
	return "", 0, nil
}

// load deserializes one cache file and validates it against the capacity
// encoded in its name.
func (st *Store) load(path string, capacity int) (*pcs.SRS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("setup: opening srs cache %s: %w", path, err)
	}
	defer f.Close()

	var srs pcs.SRS
	if _, err := srs.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("setup: srs cache %s: %w", path, err)
	}
	if srs.Capacity() != capacity {
		return nil, fmt.Errorf("%w: cache %s holds capacity %d", pcs.ErrDeserialization, path, srs.Capacity())
	}
	return &srs, nil
}

// persist writes the SRS to a temp file in the cache directory and renames it
// into place.
func (st *Store) persist(key string, srs *pcs.SRS) (err error) {
	tmp, err := os.CreateTemp(st.dir, key+".tmp-")
	if err != nil {
		return fmt.Errorf("setup: creating temp cache file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = srs.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("setup: syncing temp cache file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("setup: closing temp cache file: %w", err)
	}

	path := filepath.Join(st.dir, key)
	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("setup: installing srs cache %s: %w", path, err)
	}
	st.log.Info().Str("file", path).Int("capacity", srs.Capacity()).Msg("srs cache written")
	return nil
}
