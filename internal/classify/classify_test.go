package classify

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agentdex-labs/agentdex/internal/extract"
)

const orderSource = `"""Order handling tools.

Perfect for: restaurants, online shops
"""


class OrderVerificationAgent:
    """Verifies incoming orders and suggests upsells."""

    AGENT_NAME = "OrderVerification"
    AGENT_METADATA = {
        "name": "OrderVerification",
        "description": "Checks order details and recommends upsell items.",
        "parameters": {
            "customer_input": {"type": "string", "description": "Raw customer message"},
            "business_type": {"type": "string", "description": "Business vertical"},
        },
    }
`

func TestDefault(t *testing.T) {
	tax := Default()

	if tax.Core != "Customer Service" {
		t.Errorf("Core = %q, want %q", tax.Core, "Customer Service")
	}
	if len(tax.Categories) == 0 {
		t.Fatal("default taxonomy has no categories")
	}
	if tax.Categories[0].Name != "Customer Service" {
		t.Errorf("first category = %q, want %q", tax.Categories[0].Name, "Customer Service")
	}
	if _, ok := tax.Category(Fallback); !ok {
		t.Errorf("default taxonomy is missing the %q category", Fallback)
	}
	if len(tax.Combinations) != 3 {
		t.Errorf("combinations = %d, want 3", len(tax.Combinations))
	}
	if len(tax.Vocabulary) == 0 || len(tax.Phrases) == 0 {
		t.Error("default taxonomy should carry a vocabulary and lead-in phrases")
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	tax, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tax != Default() {
		t.Error("Load(\"\") should return the embedded default")
	}
}

func TestLoad_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	custom := `core: Robotics
categories:
  - name: Robotics
    symbol: "🤖"
    keywords: [servo, motor]
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tax.Core != "Robotics" {
		t.Errorf("Core = %q, want %q", tax.Core, "Robotics")
	}
	// The terminal category is appended when the file omits it.
	if _, ok := tax.Category(Fallback); !ok {
		t.Errorf("loaded taxonomy is missing the %q category", Fallback)
	}

	d := &extract.Declaration{ID: "arm", Description: "Drives a servo arm."}
	tax.Classify(d)
	if d.Category != "Robotics" {
		t.Errorf("Category = %q, want %q", d.Category, "Robotics")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing taxonomy file, got nil")
	}
}

func TestLoad_NoCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("core: X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for taxonomy without categories, got nil")
	}
}

func TestClassify_OrderVerification(t *testing.T) {
	d := extract.Source("order_verification_agent.py", []byte(orderSource))
	tax := Default()
	tax.Classify(d)
	tax.Mine(d)

	if d.Category != "Commerce" {
		t.Errorf("Category = %q, want %q", d.Category, "Commerce")
	}
	if !hasTag(d.Tags, "customer") {
		t.Errorf("Tags = %v, want %q included", d.Tags, "customer")
	}
	// Customer Service scores through "customer" but loses to Commerce,
	// so it lands as a secondary tag.
	if !hasTag(d.Tags, "customer service") {
		t.Errorf("Tags = %v, want secondary category tag", d.Tags)
	}
	if !hasUseCase(d.UseCases, "restaurants") || !hasUseCase(d.UseCases, "online shops") {
		t.Errorf("UseCases = %v, want restaurants and online shops", d.UseCases)
	}
}

func TestClassify_ZeroScoresFallsBack(t *testing.T) {
	d := &extract.Declaration{ID: "mystery", Description: "Nothing recognizable here."}
	Default().Classify(d)

	if d.Category != Fallback {
		t.Errorf("Category = %q, want %q", d.Category, Fallback)
	}
	if len(d.Tags) != 0 {
		t.Errorf("Tags = %v, want none", d.Tags)
	}
}

func TestClassify_TieBreaksByTaxonomyOrder(t *testing.T) {
	tax := &Taxonomy{Categories: []Category{
		{Name: "First", Keywords: []string{"shared"}},
		{Name: "Second", Keywords: []string{"shared"}},
	}}
	tax.ensureFallback()

	d := &extract.Declaration{ID: "x", Description: "A shared keyword."}
	tax.Classify(d)

	if d.Category != "First" {
		t.Errorf("Category = %q, want %q", d.Category, "First")
	}
	if !hasTag(d.Tags, "second") {
		t.Errorf("Tags = %v, want losing category recorded", d.Tags)
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"checks order details", "order", true},
		{"customer_order_id", "order", true},
		{"order", "order", true},
		{"orders pile up", "order", false},
		{"border control", "order", false},
		{"reorder", "order", false},
		{"order, then ship", "order", true},
		{"", "order", false},
	}

	for _, tt := range tests {
		if got := ContainsWord(tt.text, tt.word); got != tt.want {
			t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestMineUseCases(t *testing.T) {
	tax := Default()
	doc := `Toolkit for busy kitchens.

Perfect for: restaurants, cafes and food trucks.
ideal for: catering teams
Perfect for: restaurants
`
	got := tax.MineUseCases(doc)
	want := []string{"restaurants", "cafes", "food trucks", "catering teams"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MineUseCases = %v, want %v", got, want)
	}
}

func TestMineUseCases_NoMatches(t *testing.T) {
	if got := Default().MineUseCases("Just a plain description."); got != nil {
		t.Errorf("MineUseCases = %v, want nil", got)
	}
}

func TestMineTags_SubstringInParameterNames(t *testing.T) {
	got := Default().MineTags("handles customer_input for each store")
	if !hasTag(got, "customer") {
		t.Errorf("MineTags = %v, want %q included", got, "customer")
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func hasUseCase(cases []string, want string) bool {
	for _, c := range cases {
		if c == want {
			return true
		}
	}
	return false
}
