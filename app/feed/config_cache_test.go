package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rejsermedboern/feedsync/app/catalog"
)

func writeFeedConfig(t *testing.T, dir, feedName, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, feedName+".yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write feed config: %v", err)
	}
}

func TestConfigCache_Run(t *testing.T) {
	dir := t.TempDir()
	writeFeedConfig(t, dir, "adventure-pro", `
id: "3995"
banner_id: "98765"
url: https://example.com/feed.xml
category: pakkelister
`)
	writeFeedConfig(t, dir, "stort-feed-522", `
id: "522"
url: https://example.com/522.xml
strict_filter: true
keywords:
  - Kuffert
  - rejse
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if cc.GetConfigCount() != 2 {
		t.Fatalf("Expected 2 configs, got %d", cc.GetConfigCount())
	}

	config, err := cc.GetConfig("adventure-pro")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if config.ID != "3995" {
		t.Errorf("Unexpected id: %q", config.ID)
	}
	if config.BannerID != "98765" {
		t.Errorf("Unexpected banner_id: %q", config.BannerID)
	}
	if config.Category != catalog.CategoryPacking {
		t.Errorf("Unexpected category: %q", config.Category)
	}

	// Keywords are lowercased at load
	strict, err := cc.GetConfig("stort-feed-522")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if !strict.StrictFilter {
		t.Error("Expected strict_filter to be set")
	}
	if strict.Keywords[0] != "kuffert" {
		t.Errorf("Expected lowercased keyword, got %q", strict.Keywords[0])
	}
}

func TestConfigCache_MissingDirectory(t *testing.T) {
	cc := NewConfigCache(filepath.Join(t.TempDir(), "nope"))

	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error for missing feeds dir, got: %v", err)
	}
	if cc.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", cc.GetConfigCount())
	}
}

func TestConfigCache_GetConfigsOrdered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"urban-hunt", "adventure-pro", "cleverpack"} {
		writeFeedConfig(t, dir, name, `
id: "1"
url: https://example.com/feed.xml
`)
	}

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	configs := cc.GetConfigsOrdered()
	expected := []string{"adventure-pro", "cleverpack", "urban-hunt"}
	for i, name := range expected {
		if configs[i].Name != name {
			t.Errorf("Config %d: expected %q, got %q", i, name, configs[i].Name)
		}
	}
}

func TestConfigCache_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing-id", "url: https://example.com/feed.xml\n"},
		{"missing-url", "id: \"1\"\n"},
		{"bad-category", "id: \"1\"\nurl: https://example.com/feed.xml\ncategory: cykler\n"},
		{"strict-without-keywords", "id: \"1\"\nurl: https://example.com/feed.xml\nstrict_filter: true\n"},
	}

	for _, tt := range tests {
		dir := t.TempDir()
		writeFeedConfig(t, dir, tt.name, tt.content)

		cc := NewConfigCache(dir)
		if err := cc.Run(); err == nil {
			t.Errorf("%s: expected validation error, got nil", tt.name)
		}
	}
}

func TestConfigCache_UnknownFeed(t *testing.T) {
	cc := NewConfigCache(t.TempDir())

	if _, err := cc.GetConfig("nope"); err == nil {
		t.Error("Expected error for unknown feed name")
	}
}
