package authcore

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "custom endpoint valid",
			mutate: func(c *Config) {
				c.Endpoints.Login = "/v2/auth/login/"
			},
			wantValid: true,
		},
		{
			name: "empty endpoint invalid",
			mutate: func(c *Config) {
				c.Endpoints.VerifyEmail = ""
			},
			wantValid: false,
		},
		{
			name: "whitespace endpoint invalid",
			mutate: func(c *Config) {
				c.Endpoints.Profile = "   "
			},
			wantValid: false,
		},
		{
			name: "endpoint without leading slash invalid",
			mutate: func(c *Config) {
				c.Endpoints.Register = "auth/register/"
			},
			wantValid: false,
		},
		{
			name: "audit enabled with zero buffer invalid",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantValid: false,
		},
		{
			name: "audit disabled ignores buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = false
				c.Audit.BufferSize = 0
			},
			wantValid: true,
		},
		{
			name: "single flight off valid",
			mutate: func(c *Config) {
				c.SingleFlight.Enabled = false
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

func TestCloneConfigIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cloneConfig(cfg)

	clone.Endpoints.Login = "/other/"
	if cfg.Endpoints.Login != "/auth/login/" {
		t.Fatal("clone mutation leaked into original")
	}
}
