// Package catalog maintains the configurable provider registry behind the
// dashboard API. It loads provider definitions from YAML with env overrides
// and defaults to the built-in OpenAI and Vertex AI entries.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var providerIDRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type fileConfig struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// ProviderConfig is the YAML shape of a provider entry.
type ProviderConfig struct {
	ID          string   `yaml:"id"`
	DisplayName string   `yaml:"display_name"`
	Enabled     *bool    `yaml:"enabled"`
	Models      []string `yaml:"models"`
}

// ProviderInfo is the resolved provider entry served to the dashboard.
type ProviderInfo struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Enabled     bool     `json:"enabled"`
	Models      []string `json:"models"`
}

var (
	stateMu      sync.RWMutex
	initialized  bool
	providerByID map[string]ProviderInfo
	providerList []string
	modelIndex   map[string]string
)

// InitFromEnvAndConfig initializes the catalog by loading the providers file
// and applying env overrides. Safe to call again to force a reload.
func InitFromEnvAndConfig() error {
	providers, err := loadProviders()

	stateMu.Lock()
	defer stateMu.Unlock()

	providerByID = make(map[string]ProviderInfo)
	providerList = providerList[:0]
	modelIndex = make(map[string]string)
	for _, p := range providers {
		providerByID[p.ID] = p
		providerList = append(providerList, p.ID)
		if !p.Enabled {
			// Disabled providers stay listed but must not claim models,
			// or they would shadow an enabled provider declaring the same ID.
			continue
		}
		for _, model := range p.Models {
			if _, taken := modelIndex[model]; !taken {
				modelIndex[model] = p.ID
			}
		}
	}
	initialized = true
	return err
}

func ensureInitialized() {
	stateMu.RLock()
	ok := initialized
	stateMu.RUnlock()
	if ok {
		return
	}
	_ = InitFromEnvAndConfig()
}

// ResetForTest resets in-memory state so tests can force reload.
func ResetForTest() {
	stateMu.Lock()
	defer stateMu.Unlock()
	initialized = false
	providerByID = nil
	providerList = nil
	modelIndex = nil
}

// GetProviders returns all configured providers in ID order.
func GetProviders() []ProviderInfo {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	result := make([]ProviderInfo, 0, len(providerList))
	for _, id := range providerList {
		entry, ok := providerByID[id]
		if !ok {
			continue
		}
		entry.Models = append([]string(nil), entry.Models...)
		result = append(result, entry)
	}
	return result
}

// GetProvider returns provider metadata by ID.
func GetProvider(id string) (ProviderInfo, bool) {
	ensureInitialized()

	stateMu.RLock()
	defer stateMu.RUnlock()

	entry, ok := providerByID[normalizeProviderID(id)]
	if !ok {
		return ProviderInfo{}, false
	}
	entry.Models = append([]string(nil), entry.Models...)
	return entry, true
}

// ProviderForModel returns the enabled provider that declares a model ID.
// Matching is exact; the second return is false when no provider claims it.
func ProviderForModel(model string) (ProviderInfo, bool) {
	ensureInitialized()

	stateMu.RLock()
	id, ok := modelIndex[model]
	stateMu.RUnlock()
	if !ok {
		return ProviderInfo{}, false
	}

	provider, ok := GetProvider(id)
	if !ok || !provider.Enabled {
		return ProviderInfo{}, false
	}
	return provider, true
}

// DisplayName returns the human-readable name for a provider ID,
// falling back to the ID itself when the provider declares none.
func DisplayName(id string) (string, bool) {
	provider, ok := GetProvider(id)
	if !ok {
		return "", false
	}
	if provider.DisplayName == "" {
		return provider.ID, true
	}
	return provider.DisplayName, true
}

func loadProviders() ([]ProviderInfo, error) {
	cfgProviders, loadErr := loadConfigProviders()
	if len(cfgProviders) == 0 {
		cfgProviders = defaultProviders()
	}

	providers := make([]ProviderInfo, 0, len(cfgProviders))
	for _, cfg := range cfgProviders {
		entry, ok := normalizeConfig(cfg)
		if !ok {
			continue
		}
		providers = append(providers, entry)
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].ID < providers[j].ID
	})

	return providers, loadErr
}

func loadConfigProviders() ([]ProviderConfig, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file %q: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse providers file %q: %w", path, err)
	}

	return cfg.Providers, nil
}

func resolveConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("LLMDECK_PROVIDERS_FILE")); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	candidates := []string{
		"config/providers.yaml",
		"./config/providers.yaml",
		"/etc/llmdeck/providers.yaml",
		"/usr/local/etc/llmdeck/providers.yaml",
	}

	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", "llmdeck", "providers.yaml"),
			filepath.Join(homeDir, ".llmdeck", "providers.yaml"),
		)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func normalizeConfig(cfg ProviderConfig) (ProviderInfo, bool) {
	id := normalizeProviderID(cfg.ID)
	if !providerIDRegexp.MatchString(id) {
		return ProviderInfo{}, false
	}

	enabled := true
	if cfg.Enabled != nil {
		enabled = *cfg.Enabled
	}
	if v := strings.TrimSpace(os.Getenv(providerEnvName(id, "ENABLED"))); v != "" {
		enabled = strings.EqualFold(v, "true") || v == "1"
	}

	displayName := strings.TrimSpace(cfg.DisplayName)
	if v := strings.TrimSpace(os.Getenv(providerEnvName(id, "DISPLAY_NAME"))); v != "" {
		displayName = v
	}

	models := make([]string, 0, len(cfg.Models))
	seen := make(map[string]struct{}, len(cfg.Models))
	for _, model := range cfg.Models {
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		if _, dup := seen[model]; dup {
			continue
		}
		seen[model] = struct{}{}
		models = append(models, model)
	}

	return ProviderInfo{
		ID:          id,
		DisplayName: displayName,
		Enabled:     enabled,
		Models:      models,
	}, true
}

func normalizeProviderID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func providerEnvName(id, suffix string) string {
	upper := strings.ToUpper(id)
	replacer := strings.NewReplacer("-", "_", ".", "_", "/", "_", " ", "_")
	upper = replacer.Replace(upper)
	return fmt.Sprintf("LLMDECK_%s_%s", upper, suffix)
}

func defaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			ID:          "openai",
			DisplayName: "OpenAI",
			Enabled:     boolPtr(true),
			Models:      []string{"gpt-3.5-turbo", "gpt-4"},
		},
		{
			ID:          "vertexai",
			DisplayName: "Vertex AI",
			Enabled:     boolPtr(true),
			Models:      []string{"text-bison@001", "chat-bison@001"},
		},
	}
}

func boolPtr(v bool) *bool {
	return &v
}
