package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"zara/internal/diag"
	"zara/internal/lexer"
	"zara/internal/source"
	"zara/internal/token"
)

// tokenCacheSchema увеличивается при любом изменении формата или правил лексера.
const tokenCacheSchema uint16 = 1

// TokenCache stores lexer output on disk keyed by the SHA-256 of the file
// content. Safe for concurrent use. A nil *TokenCache is a valid, always-empty cache.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedError struct {
	Code  uint16 `msgpack:"code"`
	Char  int32  `msgpack:"char"`
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

type tokenPayload struct {
	Schema uint16        `msgpack:"schema"`
	Kinds  []uint8       `msgpack:"kinds"`
	Starts []uint32      `msgpack:"starts"`
	Ends   []uint32      `msgpack:"ends"`
	Errors []cachedError `msgpack:"errors,omitempty"`
}

// OpenTokenCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache opens a cache rooted at dir, creating it if needed.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "tokens"), 0o755); err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &TokenCache{dir: dir}, nil
}

func (c *TokenCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, "tokens", hex.EncodeToString(hash[:])+".mp")
}

// Store writes tokens and errors for file. The write is atomic.
func (c *TokenCache) Store(file *source.File, tokens []token.Token, errs []lexer.Error) error {
	if c == nil {
		return nil
	}
	payload := tokenPayload{
		Schema: tokenCacheSchema,
		Kinds:  make([]uint8, len(tokens)),
		Starts: make([]uint32, len(tokens)),
		Ends:   make([]uint32, len(tokens)),
	}
	for i, tok := range tokens {
		payload.Kinds[i] = uint8(tok.Kind)
		payload.Starts[i] = tok.Span.Start
		payload.Ends[i] = tok.Span.End
	}
	for _, e := range errs {
		payload.Errors = append(payload.Errors, cachedError{
			Code:  uint16(e.Code),
			Char:  e.Char,
			Start: e.Span.Start,
			End:   e.Span.End,
			Msg:   e.Msg,
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(file.Hash)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Lookup returns cached output for file. Spans are rebased onto file.ID and
// token text is sliced from file.Content. Any read or decode problem is a miss.
func (c *TokenCache) Lookup(file *source.File) ([]token.Token, []lexer.Error, bool) {
	if c == nil {
		return nil, nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		return nil, nil, false
	}
	defer f.Close()

	var payload tokenPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil || payload.Schema != tokenCacheSchema {
		return nil, nil, false
	}
	if len(payload.Starts) != len(payload.Kinds) || len(payload.Ends) != len(payload.Kinds) {
		return nil, nil, false
	}

	tokens := make([]token.Token, len(payload.Kinds))
	for i := range payload.Kinds {
		sp := source.Span{File: file.ID, Start: payload.Starts[i], End: payload.Ends[i]}
		tokens[i] = token.Token{Kind: token.Kind(payload.Kinds[i]), Span: sp, Text: file.Text(sp)}
	}
	var errs []lexer.Error
	for _, e := range payload.Errors {
		errs = append(errs, lexer.Error{
			Code: diag.Code(e.Code),
			Char: e.Char,
			Span: source.Span{File: file.ID, Start: e.Start, End: e.End},
			Msg:  e.Msg,
		})
	}
	return tokens, errs, true
}

// Clear removes every cached entry.
func (c *TokenCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.dir, "tokens")
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
