package catalog

import (
	"sort"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	defs := reg.List()
	if len(defs) == 0 {
		t.Fatal("default registry is empty")
	}
	if !sort.SliceIsSorted(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name }) {
		t.Error("List is not sorted by name")
	}

	d, ok := reg.Get("http_request")
	if !ok {
		t.Fatal("http_request not registered")
	}
	if d.Kind != KindTool {
		t.Errorf("http_request kind = %q, want tool", d.Kind)
	}

	d, ok = reg.Get("slack")
	if !ok {
		t.Fatal("slack not registered")
	}
	if d.Kind != KindIntegration {
		t.Errorf("slack kind = %q, want integration", d.Kind)
	}
}

func TestRegisterReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Definition{Name: "custom", Label: "v1", Kind: KindTool})
	reg.Register(Definition{Name: "custom", Label: "v2", Kind: KindTool})

	d, ok := reg.Get("custom")
	if !ok {
		t.Fatal("custom not registered")
	}
	if d.Label != "v2" {
		t.Errorf("label = %q, want v2", d.Label)
	}
	if len(reg.List()) != 1 {
		t.Errorf("List = %d entries, want 1", len(reg.List()))
	}
}
