// Package catalog lists the tool and integration definitions a workflow can
// reference. The builder uses them to label nodes and render configuration
// forms; it never interprets the config schemas itself.
package catalog

import (
	"sort"
	"sync"
)

// Kind separates plain tools from credentialed integrations.
type Kind string

const (
	KindTool        Kind = "tool"
	KindIntegration Kind = "integration"
)

// Definition describes one connectable tool or integration.
type Definition struct {
	Name         string         `json:"name"`
	Label        string         `json:"label"`
	Kind         Kind           `json:"kind"`
	Description  string         `json:"description"`
	ConfigSchema map[string]any `json:"config_schema,omitempty"`
}

// Registry is a thread-safe catalog of definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a definition.
func (r *Registry) Register(d Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[d.Name] = d
}

// Get returns a definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// List returns all definitions sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns a registry seeded with the built-in definitions.
func Default() *Registry {
	r := NewRegistry()
	for _, d := range builtins {
		r.Register(d)
	}
	return r
}

var builtins = []Definition{
	{
		Name:        "http_request",
		Label:       "HTTP Request",
		Kind:        KindTool,
		Description: "Send an HTTP request and return the response body",
		ConfigSchema: map[string]any{
			"url":    map[string]any{"type": "string", "required": true},
			"method": map[string]any{"type": "string", "default": "GET"},
		},
	},
	{
		Name:        "get_webpage",
		Label:       "Get Webpage",
		Kind:        KindTool,
		Description: "Fetch a webpage and extract its readable text",
		ConfigSchema: map[string]any{
			"url": map[string]any{"type": "string", "required": true},
		},
	},
	{
		Name:        "rss_feed",
		Label:       "RSS Feed",
		Kind:        KindTool,
		Description: "Read recent items from an RSS or Atom feed",
		ConfigSchema: map[string]any{
			"url":   map[string]any{"type": "string", "required": true},
			"limit": map[string]any{"type": "number", "default": 20},
		},
	},
	{
		Name:        "slack",
		Label:       "Slack",
		Kind:        KindIntegration,
		Description: "Post messages to a Slack channel",
		ConfigSchema: map[string]any{
			"channel": map[string]any{"type": "string", "required": true},
		},
	},
	{
		Name:        "telegram",
		Label:       "Telegram",
		Kind:        KindIntegration,
		Description: "Send messages through a Telegram bot",
		ConfigSchema: map[string]any{
			"chat_id": map[string]any{"type": "string", "required": true},
		},
	},
	{
		Name:        "smtp",
		Label:       "Email (SMTP)",
		Kind:        KindIntegration,
		Description: "Send email through an SMTP server",
		ConfigSchema: map[string]any{
			"to":      map[string]any{"type": "string", "required": true},
			"subject": map[string]any{"type": "string"},
		},
	},
}
