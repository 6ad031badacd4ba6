// Package lettaclient provides the main entry point for creating Letta API clients
package lettaclient

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/letta-client/internal/client"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

// Environment variables read by NewFromEnv.
const (
	EnvBaseURL = "LETTA_BASE_URL"
	EnvProject = "LETTA_PROJECT"
)

// New creates a Letta API client from config. The config is validated and
// no request is made.
func New(config letta.ClientConfig) (letta.Client, error) {
	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// Cloud creates a client for Letta Cloud authenticated with token.
func Cloud(token string) (letta.Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &letta.InvalidConfigError{Field: "auth", Reason: "Letta Cloud requires an API key"}
	}

	return New(letta.ConfigForEnvironment(letta.Cloud).WithAuth(letta.BearerAuth(token)))
}

// CloudWithProject creates a Letta Cloud client scoped to projectID.
func CloudWithProject(token, projectID string) (letta.Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &letta.InvalidConfigError{Field: "auth", Reason: "Letta Cloud requires an API key"}
	}

	cfg := letta.ConfigForEnvironment(letta.Cloud).
		WithAuth(letta.BearerAuth(token)).
		WithProject(projectID)

	return New(cfg)
}

// Local creates an unauthenticated client for a server on localhost:8283.
func Local() (letta.Client, error) {
	return New(letta.ConfigForEnvironment(letta.SelfHosted))
}

// NewWithEndpoint creates a client for baseURL with the given auth.
func NewWithEndpoint(baseURL string, auth letta.AuthConfig) (letta.Client, error) {
	cfg, err := letta.NewClientConfig(baseURL)
	if err != nil {
		return nil, err
	}

	return New(cfg.WithAuth(auth))
}

// NewFromEnv builds a client from LETTA_BASE_URL, LETTA_PROJECT and the
// credentials read by letta.AuthFromEnv. Without a base URL the client
// targets Letta Cloud when a credential is set and a local server otherwise.
func NewFromEnv() (letta.Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(cfg)
}

// ConfigFromEnv returns the config NewFromEnv would use.
func ConfigFromEnv() (letta.ClientConfig, error) {
	auth := letta.AuthFromEnv()

	var cfg letta.ClientConfig

	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		parsed, err := letta.NewClientConfig(baseURL)
		if err != nil {
			return letta.ClientConfig{}, err
		}

		cfg = parsed
	} else if auth.IsZero() {
		cfg = letta.ConfigForEnvironment(letta.SelfHosted)
	} else {
		cfg = letta.ConfigForEnvironment(letta.Cloud)
	}

	cfg = cfg.WithAuth(auth)

	if project := os.Getenv(EnvProject); project != "" {
		cfg = cfg.WithProject(project)
	}

	return cfg, nil
}
