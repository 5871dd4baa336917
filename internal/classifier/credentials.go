package classifier

import (
	"os"
	"strings"
	"sync"

	"github.com/linguanote/linguanote/internal/config"
)

// KeyProvider resolves the classifier API credential once and caches it for
// the life of the process. It replaces an implicit process-global key cache
// with an explicit dependency: construct it at startup and pass it to the
// Client. Reset clears the cache so tests and key rotation can force a
// reload.
type KeyProvider struct {
	cfg config.ClassifierConfig

	mu     sync.Mutex
	loaded bool
	key    string
	err    error
}

// NewKeyProvider creates a KeyProvider over the classifier configuration.
func NewKeyProvider(cfg config.ClassifierConfig) *KeyProvider {
	return &KeyProvider{cfg: cfg}
}

// Key returns the cached credential, loading it on first call. Concurrent
// callers observe a single load.
func (p *KeyProvider) Key() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		p.key, p.err = p.load()
		p.loaded = true
	}
	return p.key, p.err
}

// Reset discards the cached credential and any cached load error.
func (p *KeyProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = false
	p.key = ""
	p.err = nil
}

// load resolves the key: explicit config value, then key file, then the
// ANTHROPIC_API_KEY environment variable.
func (p *KeyProvider) load() (string, error) {
	if p.cfg.APIKey != "" {
		return p.cfg.APIKey, nil
	}
	if p.cfg.APIKeyFile != "" {
		data, err := os.ReadFile(p.cfg.APIKeyFile)
		if err != nil {
			return "", err
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
		return "", ErrAPIKeyMissing
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", ErrAPIKeyMissing
}
