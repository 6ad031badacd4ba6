package commands

import (
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/letta-client/internal/constants"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
	"github.com/fivetwenty-io/letta-client/pkg/lettaclient"
)

// CreateClient builds a Letta client from flags, LETTA_* environment
// variables and the config file, in that order of precedence.
func CreateClient() (letta.Client, error) {
	cfg, err := buildClientConfig()
	if err != nil {
		return nil, err
	}

	return lettaclient.New(cfg)
}

func buildClientConfig() (letta.ClientConfig, error) {
	apiKey := viper.GetString("api_key")

	cfg, err := letta.NewClientConfig(resolveBaseURL(apiKey))
	if err != nil {
		return letta.ClientConfig{}, err
	}

	if apiKey != "" {
		cfg = cfg.WithAuth(letta.BearerAuth(apiKey))
	}

	if project := viper.GetString("project"); project != "" {
		cfg = cfg.WithProject(project)
	}

	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		cfg = cfg.WithTimeout(timeout)
	}

	verbose := viper.GetBool("verbose")

	logger, err := newLogger(verbose)
	if err != nil {
		return letta.ClientConfig{}, err
	}

	chain := letta.NewInterceptorChain().AddRequestInterceptor(letta.RequestIDInterceptor())

	if rps := viper.GetFloat64("rate_limit"); rps > 0 {
		chain.AddRequestInterceptor(letta.RateLimitInterceptor(rate.NewLimiter(rate.Limit(rps), 1)))
	}

	if verbose {
		chain.AddResponseInterceptor(letta.LoggingResponseInterceptor(logger))
	}

	return cfg.
		WithLogger(logger).
		WithDebug(verbose).
		WithUserAgent(constants.DefaultUserAgent + "-cli").
		WithInterceptors(chain), nil
}

// resolveBaseURL falls back to Letta Cloud when an API key is configured
// and to a local server otherwise.
func resolveBaseURL(apiKey string) string {
	if baseURL := viper.GetString("base_url"); baseURL != "" {
		return baseURL
	}

	if apiKey != "" {
		return constants.CloudBaseURL
	}

	return constants.SelfHostedBaseURL
}
