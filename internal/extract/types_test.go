package extract

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParamSchema_MarshalPreservesOrder(t *testing.T) {
	schema := ParamSchema{
		{Name: "zeta", Spec: ParamSpec{Type: "string", Description: "last alphabetically"}},
		{Name: "alpha", Spec: ParamSpec{Type: "number"}},
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if zi, ai := strings.Index(string(data), "zeta"), strings.Index(string(data), "alpha"); zi < 0 || ai < 0 || zi > ai {
		t.Errorf("declaration order not preserved: %s", data)
	}
}

func TestParamSchema_JSONRoundTrip(t *testing.T) {
	schema := ParamSchema{
		{Name: "customer_input", Spec: ParamSpec{Type: "string", Description: "Raw customer message"}},
		{Name: "business_type", Spec: ParamSpec{Type: "string", Description: "Business vertical"}},
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back ParamSchema
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(back) != len(schema) {
		t.Fatalf("round trip len = %d, want %d", len(back), len(schema))
	}
	for i := range schema {
		if back[i].Name != schema[i].Name {
			t.Errorf("entry[%d] = %q, want %q", i, back[i].Name, schema[i].Name)
		}
		if back[i].Spec != schema[i].Spec {
			t.Errorf("entry[%d] spec = %+v, want %+v", i, back[i].Spec, schema[i].Spec)
		}
	}
}

func TestParamSchema_UnmarshalRejectsNonObject(t *testing.T) {
	var schema ParamSchema
	if err := json.Unmarshal([]byte(`["not", "an", "object"]`), &schema); err == nil {
		t.Fatal("expected error for non-object parameters, got nil")
	}
}

func TestDeclaration_MarshalOmitsRawSource(t *testing.T) {
	d := Source("demo_agent.py", []byte(`AGENT_NAME = "Demo"`))

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if strings.Contains(string(data), "AGENT_NAME") {
		t.Errorf("raw source leaked into JSON: %s", data)
	}
	if d.Raw() == "" {
		t.Error("Raw() should keep the original text in memory")
	}
}

func TestDeclaration_TextViews(t *testing.T) {
	d := Source("order_verification_agent.py", []byte(orderSource))

	if !strings.Contains(d.DocText(), "Perfect for") {
		t.Error("DocText should include the module docstring")
	}
	if strings.Contains(d.DocText(), "customer_input") {
		t.Error("DocText should not include parameter names")
	}
	if !strings.Contains(d.TagText(), "customer_input") {
		t.Error("TagText should include parameter names")
	}
	if !strings.Contains(d.SearchText(), "AGENT_METADATA") {
		t.Error("SearchText should include raw source")
	}
}
