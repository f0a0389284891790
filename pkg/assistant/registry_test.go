package assistant

import (
	"context"
	"fmt"
	"testing"
)

type stubTool struct {
	spec     ToolSpec
	response ToolResponse
	err      error
	lastReq  ToolRequest
	calls    int
}

func (t *stubTool) Spec() ToolSpec { return t.spec }

func (t *stubTool) Invoke(_ context.Context, req ToolRequest) (ToolResponse, error) {
	t.lastReq = req
	t.calls++
	if t.err != nil {
		return ToolResponse{}, t.err
	}
	return t.response, nil
}

func namedTool(name string) *stubTool {
	return &stubTool{
		spec: ToolSpec{
			Name:        name,
			Description: fmt.Sprintf("%s description", name),
			Params:      []Param{{Name: "query", Type: "string", Required: true}},
		},
		response: ToolResponse{Content: name + " ok"},
	}
}

func TestRegistryRegisterAndList(t *testing.T) {
	r := NewRegistry(namedTool("alpha"), namedTool("beta"), namedTool("gamma"))

	names := r.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(names))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if names[i] != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, names[i])
		}
	}
}

func TestRegistryOverwriteKeepsPosition(t *testing.T) {
	r := NewRegistry(namedTool("alpha"), namedTool("beta"))

	replacement := namedTool("alpha")
	replacement.spec.Description = "replaced"
	r.Register(replacement)

	if r.Len() != 2 {
		t.Fatalf("overwrite must not grow the registry, got %d entries", r.Len())
	}
	tools := r.List()
	if tools[0].Spec().Description != "replaced" {
		t.Fatalf("expected overwritten descriptor in original position")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry(namedTool("alpha"), namedTool("beta"))

	if !r.Unregister("alpha") {
		t.Fatalf("expected Unregister to report an existing entry")
	}
	if r.Unregister("alpha") {
		t.Fatalf("expected Unregister on an absent name to return false")
	}

	for _, tool := range r.List() {
		if tool.Spec().Name == "alpha" {
			t.Fatalf("List still contains the unregistered tool")
		}
	}
}

func TestRegistryListByCategory(t *testing.T) {
	research := namedTool("wiki")
	research.spec.Category = "research"
	writing := namedTool("stats")
	writing.spec.Category = "writing"
	r := NewRegistry(research, writing)

	got := r.List("research")
	if len(got) != 1 || got[0].Spec().Name != "wiki" {
		t.Fatalf("expected only the research tool, got %d entries", len(got))
	}
	if len(r.List("missing")) != 0 {
		t.Fatalf("expected no tools for an unknown category")
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(namedTool("Alpha"))

	if _, ok := r.Lookup("alpha"); !ok {
		t.Fatalf("expected lookup to ignore case")
	}
	if _, ok := r.Lookup("  ALPHA  "); !ok {
		t.Fatalf("expected lookup to trim whitespace")
	}
}
