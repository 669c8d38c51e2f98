// Package constpool maintains a deduplicated table of bigint constants
// and its on-disk serialization. Compilers embed one pool per artifact:
// every literal in the source maps to an ID, identical values share an
// entry, and the runtime materializes digits from the stored canonical
// bytes on demand.
package constpool

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/bigint"
)

// Current schema version - increment when filePayload format changes
const poolSchemaVersion uint16 = 1

var (
	// ErrSchema reports a pool file written with an incompatible layout.
	ErrSchema = errors.New("unsupported pool schema")
	// ErrNotFound reports an ID with no entry in the pool.
	ErrNotFound = errors.New("constant not found")
)

// ID names one entry in a Pool. IDs are dense and assigned in insertion
// order, so a pool round-tripped through disk preserves them.
type ID uint32

// Pool is an append-only, deduplicated table of canonical bigint byte
// sequences. Thread-safe for concurrent access.
type Pool struct {
	mu      sync.RWMutex
	entries [][]byte
	index   map[string]ID
}

// filePayload is the msgpack wire form of a pool.
type filePayload struct {
	Schema  uint16
	Entries [][]byte
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{index: make(map[string]ID)}
}

// Add inserts the parsed literal and returns its ID. Values already in
// the pool are not duplicated; the existing ID comes back instead.
func (p *Pool) Add(v bigint.ParsedBigInt) ID {
	return p.addBytes(v.Bytes())
}

func (p *Pool) addBytes(raw []byte) ID {
	key := string(raw)

	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.index[key]; ok {
		return id
	}
	id := ID(len(p.entries))
	entry := make([]byte, len(raw))
	copy(entry, raw)
	p.entries = append(p.entries, entry)
	p.index[key] = id
	return id
}

// Get returns the canonical bytes stored under id. The returned slice
// is owned by the pool and must not be modified.
func (p *Pool) Get(id ID) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if int(id) >= len(p.entries) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return p.entries[id], nil
}

// Value materializes the constant stored under id into a freshly
// allocated digit buffer.
func (p *Pool) Value(id ID) (bigint.BigInt, error) {
	raw, err := p.Get(id)
	if err != nil {
		return bigint.Zero(), err
	}
	m := bigint.Mutable(make([]uint64, bigint.NumDigitsForBytes(len(raw))))
	if err := bigint.InitWithBytes(&m, raw); err != nil {
		return bigint.Zero(), err
	}
	return m.Ref(), nil
}

// Len returns the number of distinct constants in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Entries returns a snapshot of the stored byte sequences in ID order.
func (p *Pool) Entries() [][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([][]byte, len(p.entries))
	copy(out, p.entries)
	return out
}

// Save serializes the pool to path. The write goes through a temp file
// in the same directory and an atomic rename, so readers never observe
// a partial pool.
func (p *Pool) Save(path string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn().Err(rmErr).Msg("failed to remove temp file")
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&filePayload{
		Schema:  poolSchemaVersion,
		Entries: p.entries,
	}); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("entries", len(p.entries)).Msg("pool saved")
	return nil
}

// Load reads a pool previously written by Save. Files with a different
// schema are rejected rather than misread.
func Load(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close pool file")
		}
	}()

	var payload filePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Schema != poolSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, payload.Schema, poolSchemaVersion)
	}

	p := New()
	for _, raw := range payload.Entries {
		p.addBytes(raw)
	}
	log.Debug().Str("path", path).Int("entries", p.Len()).Msg("pool loaded")
	return p, nil
}

// Dump returns one line per entry: the ID, the hex of the canonical
// bytes, and the base-radix rendering.
func (p *Pool) Dump(radix int) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	lines := make([]string, len(p.entries))
	for i, raw := range p.entries {
		m := bigint.Mutable(make([]uint64, bigint.NumDigitsForBytes(len(raw))))
		if err := bigint.InitWithBytes(&m, raw); err != nil {
			return nil, err
		}
		s, err := bigint.ToString(m.Ref(), radix)
		if err != nil {
			return nil, err
		}
		lines[i] = fmt.Sprintf("%d\t%s\t%s", i, hex.EncodeToString(raw), s)
	}
	return lines, nil
}
