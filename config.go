package authcore

import (
	"errors"
	"strings"
)

// Config defines a public type used by authcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Endpoints    EndpointsConfig
	SingleFlight SingleFlightConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
ENDPOINTS CONFIG
====================================
*/

// EndpointsConfig holds the REST paths each flow submits to, relative to the
// transport's base URL. Paths are illustrative of the backend contract, not
// prescriptive; deployments override them per environment.
type EndpointsConfig struct {
	Login            string
	SocialGoogle     string
	SocialApple      string
	Register         string
	VerifyEmail      string
	ResendCode       string
	ForgotPassword   string
	VerifyResetCode  string
	ResetComplete    string
	Profile          string
}

// SingleFlightConfig controls the per-operation guard that coalesces
// concurrent duplicate submissions (the UI is expected to disable re-entrant
// submission, but the guard makes the race well-defined).
type SingleFlightConfig struct {
	Enabled bool
}

// AuditConfig defines a public type used by authcore APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by authcore APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the mobile apps ship with.
func DefaultConfig() Config {
	return Config{
		Endpoints: EndpointsConfig{
			Login:           "/auth/login/",
			SocialGoogle:    "/auth/google/",
			SocialApple:     "/auth/apple/",
			Register:        "/auth/register/",
			VerifyEmail:     "/auth/verify-email/",
			ResendCode:      "/auth/resend-code/",
			ForgotPassword:  "/auth/request-reset-email/",
			VerifyResetCode: "/auth/verify-reset-code/",
			ResetComplete:   "/auth/password-reset-complete/",
			Profile:         "/user/profile/",
		},
		SingleFlight: SingleFlightConfig{
			Enabled: true,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	endpoints := map[string]string{
		"Login":           c.Endpoints.Login,
		"SocialGoogle":    c.Endpoints.SocialGoogle,
		"SocialApple":     c.Endpoints.SocialApple,
		"Register":        c.Endpoints.Register,
		"VerifyEmail":     c.Endpoints.VerifyEmail,
		"ResendCode":      c.Endpoints.ResendCode,
		"ForgotPassword":  c.Endpoints.ForgotPassword,
		"VerifyResetCode": c.Endpoints.VerifyResetCode,
		"ResetComplete":   c.Endpoints.ResetComplete,
		"Profile":         c.Endpoints.Profile,
	}
	for name, path := range endpoints {
		if strings.TrimSpace(path) == "" {
			return errors.New("endpoint path " + name + " must not be empty")
		}
		if !strings.HasPrefix(path, "/") {
			return errors.New("endpoint path " + name + " must start with /")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive when audit is enabled")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}
