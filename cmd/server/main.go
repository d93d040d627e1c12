// Command server runs the schliff translation gateway.
//
// Configuration is layered: built-in defaults, a YAML config file
// (discovered or passed with -config), and SCHLIFF_* environment variable
// overrides. See pkg/config for the full reference.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/auth"
	"github.com/schliff-dev/schliff/pkg/auth/apikey"
	"github.com/schliff-dev/schliff/pkg/auth/jwt"
	"github.com/schliff-dev/schliff/pkg/auth/noop"
	"github.com/schliff-dev/schliff/pkg/config"
	"github.com/schliff-dev/schliff/pkg/debug"
	"github.com/schliff-dev/schliff/pkg/engine"
	"github.com/schliff-dev/schliff/pkg/observability"
	"github.com/schliff-dev/schliff/pkg/provider"
	"github.com/schliff-dev/schliff/pkg/provider/openaicompat"
	"github.com/schliff-dev/schliff/pkg/storage/memory"
	transporthttp "github.com/schliff-dev/schliff/pkg/transport/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	debug.Init("", "")

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Provider client.
	client := openaicompat.NewClient(provider.Settings{
		BaseURL:              cfg.Provider.BaseURL,
		APIKeys:              cfg.Provider.APIKeys,
		DeploymentName:       cfg.Provider.Deployment,
		APIVersion:           cfg.Provider.APIVersion,
		Model:                cfg.Provider.Model,
		CustomModel:          cfg.Provider.CustomModel,
		PolishMode:           api.PolishMode(cfg.Provider.PolishMode),
		SystemPromptTemplate: cfg.Provider.SystemPromptTemplate,
		UserPromptTemplate:   cfg.Provider.UserPromptTemplate,
	}, cfg.Provider.Timeout)
	defer client.Close()

	// Translation store.
	store := memory.New(cfg.Storage.MaxSize)
	defer store.Close()
	slog.Info("storage enabled", "type", cfg.Storage.Type, "max_size", cfg.Storage.MaxSize)

	// Engine.
	eng, err := engine.New(client, store, engine.Config{
		MaxTextSize:       cfg.Engine.MaxTextSize,
		DefaultSourceLang: cfg.Engine.DefaultSourceLang,
	})
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	// Inbound auth.
	chain, err := buildAuthChain(cfg)
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}
	limiter := buildRateLimiter(cfg)

	httpMW := []func(http.Handler) http.Handler{
		observability.MetricsMiddleware,
		auth.Middleware(chain, limiter, auth.DefaultBypassEndpoints),
	}

	srv := transporthttp.NewServer(eng, eng, store,
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithHTTPMiddleware(httpMW...),
	)

	if cfg.Observability.Metrics.Enabled {
		go serveMetrics(cfg.Observability.Metrics.Path, cfg.Server.Port+1)
	}

	slog.Info("schliff starting",
		"port", cfg.Server.Port,
		"backend", provider.DetectFamily(cfg.Provider.BaseURL).String(),
		"model", cfg.Provider.Model,
		"auth", cfg.Auth.Type,
	)

	return srv.ListenAndServe()
}

// buildAuthChain constructs the authenticator chain from configuration.
func buildAuthChain(cfg *config.Config) (*auth.Chain, error) {
	switch cfg.Auth.Type {
	case "none", "":
		return &auth.Chain{
			Authenticators: []auth.Authenticator{&noop.Authenticator{}},
		}, nil

	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			metadata := map[string]string{}
			if k.TenantID != "" {
				metadata["tenant_id"] = k.TenantID
			}
			entries = append(entries, apikey.RawKeyEntry{
				Key: k.Key,
				Identity: auth.Identity{
					Subject:     k.Subject,
					ServiceTier: k.ServiceTier,
					Metadata:    metadata,
				},
			})
		}
		return &auth.Chain{
			Authenticators:  []auth.Authenticator{apikey.New(entries)},
			DefaultDecision: auth.Deny,
		}, nil

	case "jwt":
		authn := jwt.New(jwt.Config{
			Issuer:      cfg.Auth.JWT.Issuer,
			Audience:    cfg.Auth.JWT.Audience,
			JWKSURL:     cfg.Auth.JWT.JWKSURL,
			UserClaim:   cfg.Auth.JWT.UserClaim,
			TenantClaim: cfg.Auth.JWT.TenantClaim,
			ScopesClaim: cfg.Auth.JWT.ScopesClaim,
			CacheTTL:    cfg.Auth.JWT.CacheTTL,
		})
		return &auth.Chain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.Deny,
		}, nil

	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}
}

// buildRateLimiter constructs the rate limiter, or returns nil when disabled.
func buildRateLimiter(cfg *config.Config) auth.RateLimiter {
	if !cfg.Auth.RateLimit.Enabled {
		return nil
	}
	tiers := make(map[string]auth.TierConfig, len(cfg.Auth.RateLimit.Tiers))
	for name, rpm := range cfg.Auth.RateLimit.Tiers {
		tiers[name] = auth.TierConfig{RequestsPerMinute: rpm}
	}
	return auth.NewInProcessLimiter(tiers, cfg.Auth.RateLimit.DefaultRPM)
}

// serveMetrics exposes the Prometheus endpoint on its own port so the
// metrics listener is never subject to API auth.
func serveMetrics(path string, port int) {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	slog.Info("metrics listening", "addr", addr, "path", path)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server failed", "error", err)
	}
}
