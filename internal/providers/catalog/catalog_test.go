package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogDefaults(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	if err := InitFromEnvAndConfig(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}

	providers := GetProviders()
	if len(providers) != 2 {
		t.Fatalf("expected 2 default providers, got %d", len(providers))
	}

	openai, ok := GetProvider("openai")
	if !ok {
		t.Fatal("expected openai provider")
	}
	if openai.DisplayName != "OpenAI" || !openai.Enabled {
		t.Fatalf("unexpected openai entry: %+v", openai)
	}

	vertex, ok := ProviderForModel("chat-bison@001")
	if !ok {
		t.Fatal("expected chat-bison@001 to resolve")
	}
	if vertex.ID != "vertexai" {
		t.Fatalf("chat-bison@001 resolved to %q, want vertexai", vertex.ID)
	}

	if _, ok := ProviderForModel("claude-3"); ok {
		t.Fatal("expected claude-3 to be unclaimed")
	}
}

func TestCatalogLoadFromFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "providers.yaml")
	cfg := `providers:
  - id: openai
    display_name: OpenAI
    enabled: true
    models: [gpt-3.5-turbo, gpt-4]
  - id: anthropic
    display_name: Anthropic
    enabled: false
    models: [claude-3-opus]
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LLMDECK_PROVIDERS_FILE", cfgPath)

	if err := InitFromEnvAndConfig(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}

	anthropic, ok := GetProvider("anthropic")
	if !ok {
		t.Fatal("expected anthropic provider")
	}
	if anthropic.Enabled {
		t.Fatal("expected anthropic to be disabled")
	}

	// Disabled providers do not claim their models.
	if _, ok := ProviderForModel("claude-3-opus"); ok {
		t.Fatal("expected claude-3-opus to be unclaimed while anthropic is disabled")
	}

	if provider, ok := ProviderForModel("gpt-4"); !ok || provider.ID != "openai" {
		t.Fatalf("gpt-4 resolved to %+v, %v; want openai", provider, ok)
	}
}

func TestCatalogEnvOverrides(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	t.Setenv("LLMDECK_VERTEXAI_ENABLED", "false")
	t.Setenv("LLMDECK_OPENAI_DISPLAY_NAME", "OpenAI (EU)")

	if err := InitFromEnvAndConfig(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}

	if _, ok := ProviderForModel("text-bison@001"); ok {
		t.Fatal("expected text-bison@001 unclaimed after disabling vertexai")
	}

	name, ok := DisplayName("openai")
	if !ok || name != "OpenAI (EU)" {
		t.Fatalf("DisplayName(openai) = %q, %v; want OpenAI (EU)", name, ok)
	}
}

func TestCatalogDisabledProviderDoesNotShadowEnabled(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// The disabled provider sorts first; the enabled one declaring the same
	// model must still win the claim.
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "providers.yaml")
	cfg := `providers:
  - id: aaa-mirror
    display_name: Mirror
    enabled: false
    models: [shared-model]
  - id: zzz-live
    display_name: Live
    enabled: true
    models: [shared-model]
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LLMDECK_PROVIDERS_FILE", cfgPath)

	if err := InitFromEnvAndConfig(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}

	provider, ok := ProviderForModel("shared-model")
	if !ok {
		t.Fatal("expected shared-model to resolve")
	}
	if provider.ID != "zzz-live" {
		t.Fatalf("shared-model resolved to %q, want zzz-live", provider.ID)
	}
}

func TestCatalogRejectsInvalidIDs(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "providers.yaml")
	cfg := `providers:
  - id: "Bad ID!"
    models: [some-model]
  - id: ollama
    models: [llama3]
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LLMDECK_PROVIDERS_FILE", cfgPath)

	if err := InitFromEnvAndConfig(); err != nil {
		t.Fatalf("init catalog: %v", err)
	}

	providers := GetProviders()
	if len(providers) != 1 || providers[0].ID != "ollama" {
		t.Fatalf("expected only ollama to survive, got %+v", providers)
	}
}
