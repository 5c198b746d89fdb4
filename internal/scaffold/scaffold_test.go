package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentdex-labs/agentdex/internal/extract"
	"github.com/agentdex-labs/agentdex/internal/scanner"
)

func TestNewData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		display  string
		class    string
		fileName string
	}{
		{"kebab", "order-verification", "OrderVerification", "OrderVerificationAgent", "order_verification_agent.py"},
		{"snake", "order_verification", "OrderVerification", "OrderVerificationAgent", "order_verification_agent.py"},
		{"spaces", "Order Verification", "OrderVerification", "OrderVerificationAgent", "order_verification_agent.py"},
		{"camel", "orderVerification", "OrderVerification", "OrderVerificationAgent", "order_verification_agent.py"},
		{"agent suffix absorbed", "order_agent", "Order", "OrderAgent", "order_agent.py"},
		{"single word", "pricing", "Pricing", "PricingAgent", "pricing_agent.py"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewData(tt.input, "")
			if err != nil {
				t.Fatalf("NewData(%q) error: %v", tt.input, err)
			}
			if d.DisplayName != tt.display {
				t.Errorf("DisplayName = %q, want %q", d.DisplayName, tt.display)
			}
			if d.ClassName != tt.class {
				t.Errorf("ClassName = %q, want %q", d.ClassName, tt.class)
			}
			if d.FileName != tt.fileName {
				t.Errorf("FileName = %q, want %q", d.FileName, tt.fileName)
			}
		})
	}
}

func TestNewData_Invalid(t *testing.T) {
	for _, input := range []string{"", "---", "123checkout"} {
		if _, err := NewData(input, ""); err == nil {
			t.Errorf("NewData(%q) should fail", input)
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()

	data, err := NewData("order-verification", "")
	if err != nil {
		t.Fatal(err)
	}
	result, err := Generate(data, dir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
	if result.Path != filepath.Join(dir, "order_verification_agent.py") {
		t.Errorf("Path = %q", result.Path)
	}

	content := readGenerated(t, result.Path)
	assertContains(t, content, "class OrderVerificationAgent:")
	assertContains(t, content, `AGENT_NAME = "OrderVerification"`)

	// The starter must come out of the extractor whole.
	d, err := extract.File(result.Path)
	if err != nil {
		t.Fatalf("extracting generated file: %v", err)
	}
	if d.Completeness != extract.CompletenessFull {
		t.Errorf("Completeness = %q, want %q", d.Completeness, extract.CompletenessFull)
	}
	if d.ID != "OrderVerification" {
		t.Errorf("ID = %q, want %q", d.ID, "OrderVerification")
	}
	if got := d.Parameters.Names(); len(got) != 1 || got[0] != "input" {
		t.Errorf("parameter names = %v, want [input]", got)
	}
}

func TestGenerate_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	data, err := NewData("pricing", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(data, dir); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	path := filepath.Join(dir, data.FileName)
	if err := os.WriteFile(path, []byte("# edited by hand\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(data, dir); err == nil {
		t.Fatal("second Generate() should refuse to overwrite")
	}
	if got := readGenerated(t, path); got != "# edited by hand\n" {
		t.Errorf("existing file was clobbered: %q", got)
	}
}

func TestGenerate_CategoryHint(t *testing.T) {
	t.Run("known category", func(t *testing.T) {
		data, err := NewData("checkout-helper", "Commerce")
		if err != nil {
			t.Fatal(err)
		}
		result, err := Generate(data, t.TempDir())
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(result.Warnings) != 0 {
			t.Errorf("Warnings = %v, want none", result.Warnings)
		}
		assertContains(t, readGenerated(t, result.Path), `"category": "Commerce"`)
	})

	t.Run("unknown category warns", func(t *testing.T) {
		data, err := NewData("rover", "Robotics")
		if err != nil {
			t.Fatal(err)
		}
		result, err := Generate(data, t.TempDir())
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Robotics") {
			t.Errorf("Warnings = %v, want unknown-category warning", result.Warnings)
		}
	})
}

func TestGenerate_DefaultScanFindsIt(t *testing.T) {
	dir := t.TempDir()
	data, err := NewData("faq-responder", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(data, dir); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	found, err := scanner.Scan(dir, scanner.Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(found) != 1 || found[0] != "faq_responder_agent.py" {
		t.Errorf("Scan() = %v, want the scaffolded file", found)
	}
}

func readGenerated(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(b)
}

func assertContains(t *testing.T, content, want string) {
	t.Helper()
	if !strings.Contains(content, want) {
		t.Errorf("content missing %q", want)
	}
}
