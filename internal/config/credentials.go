package config

import (
	"os"
	"strings"
)

// CredentialResolver yields the text-generation API key, or "" when none is configured
type CredentialResolver interface {
	Resolve() string
}

// Credentials resolves the API key from an environment variable, falling back
// to a one-line key file. The environment always wins.
type Credentials struct {
	EnvVar   string
	File     string
	lookupFn func(string) (string, bool)
}

// NewCredentials returns a resolver reading OPENAI_API_KEY, then cfg.OpenAIKeyFile
func NewCredentials(cfg *Config) *Credentials {
	return &Credentials{EnvVar: "OPENAI_API_KEY", File: cfg.OpenAIKeyFile, lookupFn: os.LookupEnv}
}

// Resolve reads the key afresh; callers resolve once per request
func (c *Credentials) Resolve() string {
	lookup := c.lookupFn
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(c.EnvVar); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if c.File == "" {
		return ""
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// StaticKey is a fixed credential, used by the CLI --api-key flag and in tests
type StaticKey string

// Resolve returns the key itself
func (k StaticKey) Resolve() string { return strings.TrimSpace(string(k)) }
