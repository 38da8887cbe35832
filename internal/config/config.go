package config

// Config represents tunable dashboard settings stored in config.yaml.
// Secrets and endpoints stay in the environment; this file only carries
// values an operator may want to adjust without redeploying.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Stats     StatsConfig     `yaml:"stats"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// ServerConfig holds server metadata settings.
type ServerConfig struct {
	Name string `yaml:"name"`
}

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	TokenTTLMinutes int `yaml:"token_ttl_minutes"`
}

// StatsConfig holds user directory aggregation settings.
type StatsConfig struct {
	// RecentSignupDays is the trailing window for the recent-signups counter.
	RecentSignupDays int `yaml:"recent_signup_days"`
}

// AnalyticsConfig holds analytics aggregation settings.
type AnalyticsConfig struct {
	OverviewCacheSeconds int `yaml:"overview_cache_seconds"`
	DefaultTrendDays     int `yaml:"default_trend_days"`
	DefaultSalesDays     int `yaml:"default_sales_days"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Admin Dashboard",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60 * 24,
		},
		Stats: StatsConfig{
			RecentSignupDays: 7,
		},
		Analytics: AnalyticsConfig{
			OverviewCacheSeconds: 30,
			DefaultTrendDays:     7,
			DefaultSalesDays:     30,
		},
	}
}

// normalize fills zero values with defaults so a hand-edited config file
// with missing keys still yields usable settings.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Server.Name == "" {
		c.Server.Name = d.Server.Name
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = d.Auth.TokenTTLMinutes
	}
	if c.Stats.RecentSignupDays <= 0 {
		c.Stats.RecentSignupDays = d.Stats.RecentSignupDays
	}
	if c.Analytics.OverviewCacheSeconds <= 0 {
		c.Analytics.OverviewCacheSeconds = d.Analytics.OverviewCacheSeconds
	}
	if c.Analytics.DefaultTrendDays <= 0 {
		c.Analytics.DefaultTrendDays = d.Analytics.DefaultTrendDays
	}
	if c.Analytics.DefaultSalesDays <= 0 {
		c.Analytics.DefaultSalesDays = d.Analytics.DefaultSalesDays
	}
}
