package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PuraFome/fodinha/game/engine"
	"github.com/PuraFome/fodinha/game/service"
)

var (
	ErrRulesetNotFound = errors.New("ruleset not found")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
)

// defaultRuleset is the built-in table configuration used when no ruleset
// directory is configured or a table doesn't name one.
var defaultRuleset = engine.Ruleset{
	Name:               "standard",
	Description:        "Standard Fodinha table: up to 4 players, 10 second reveal.",
	DefaultMaxPlayers:  4,
	RevealDelaySeconds: 10,
}

// Manager loads and caches ruleset JSON files from a config directory. The
// directory is optional: with none configured only the built-in standard
// ruleset is served.
type Manager struct {
	configDir string
	rulesets  map[string]*engine.Ruleset
	mu        sync.RWMutex
}

// NewManager creates a ruleset manager over the given directory. An empty
// or missing directory is fine; it just means defaults only.
func NewManager(configDir string) *Manager {
	return &Manager{
		configDir: configDir,
		rulesets:  make(map[string]*engine.Ruleset),
	}
}

// GetDefault returns the built-in standard ruleset.
func (m *Manager) GetDefault() *engine.Ruleset {
	r := defaultRuleset
	return &r
}

// Load loads a ruleset by name, checking the cache first.
func (m *Manager) Load(name string) (*engine.Ruleset, error) {
	if name == "" || name == defaultRuleset.Name {
		return m.GetDefault(), nil
	}

	m.mu.RLock()
	if ruleset, exists := m.rulesets[name]; exists {
		m.mu.RUnlock()
		return ruleset, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if ruleset, exists := m.rulesets[name]; exists {
		return ruleset, nil
	}

	if m.configDir == "" {
		return nil, ErrRulesetNotFound
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesetNotFound
		}
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	var ruleset engine.Ruleset
	if err := json.Unmarshal(data, &ruleset); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset: %w", err)
	}
	if err := engine.ValidateRuleset(&ruleset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleset, err)
	}

	m.rulesets[name] = &ruleset
	return &ruleset, nil
}

// List returns information about every available ruleset: the built-in
// default plus any valid JSON files in the config directory.
func (m *Manager) List() ([]*service.RulesetInfo, error) {
	infos := []*service.RulesetInfo{rulesetInfo(defaultRuleset.Name, &defaultRuleset)}

	if m.configDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return infos, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		ruleset, err := m.Load(name)
		if err != nil {
			continue
		}
		infos = append(infos, rulesetInfo(name, ruleset))
	}

	return infos, nil
}

func rulesetInfo(id string, r *engine.Ruleset) *service.RulesetInfo {
	return &service.RulesetInfo{
		RulesetID:          id,
		Name:               r.Name,
		Description:        r.Description,
		DefaultMaxPlayers:  r.DefaultMaxPlayers,
		RevealDelaySeconds: r.RevealDelaySeconds,
	}
}
