package loom

// Credential is a named credential profile that tool and integration nodes
// reference by id. Secrets are masked before leaving the server.
type Credential struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Provider string         `json:"provider"` // e.g. "slack", "github", "smtp"
	Host     string         `json:"host,omitempty"`
	Login    string         `json:"login,omitempty"`
	Secret   string         `json:"secret,omitempty"` // encrypted at rest
	Extras   map[string]any `json:"extras,omitempty"`
}

// CredentialSafe is the API view of a Credential with the secret removed.
type CredentialSafe struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Provider string         `json:"provider"`
	Host     string         `json:"host,omitempty"`
	Login    string         `json:"login,omitempty"`
	Extras   map[string]any `json:"extras,omitempty"`
}

// Safe returns the masked view.
func (c *Credential) Safe() CredentialSafe {
	return CredentialSafe{
		ID:       c.ID,
		Name:     c.Name,
		Provider: c.Provider,
		Host:     c.Host,
		Login:    c.Login,
		Extras:   c.Extras,
	}
}
