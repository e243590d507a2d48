package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
service_name = "cart"
environment = "prod"

[http]
port = 8081

[database]
driver = "postgres"
dsn = "host=localhost user=shop dbname=shop"

[cart]
low_stock_threshold = 3

[shipping]
flat_fee = "5.50"
franco_threshold = "60"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "cart", cfg.ServiceName)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Cart.LowStockThreshold)
	assert.Equal(t, "EUR", cfg.Cart.Currency)
	assert.Equal(t, "5.5", cfg.Shipping.Fee().String())
	assert.Equal(t, "60", cfg.Shipping.Franco().String())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 10, cfg.Kafka.BatchTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_HTTP_PORT", "9100")
	t.Setenv("APP_DATABASE_DSN", "root@tcp(db:3306)/shop")
	t.Setenv("APP_DATABASE_DRIVER", "mysql")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "root@tcp(db:3306)/shop", cfg.Database.DSN)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_SERVICE_NAME", "catalog")
	t.Setenv("APP_DATABASE_DSN", "dsn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ServiceName: "cart",
			HTTP:        HTTPConfig{Port: 8080},
			Database:    DatabaseConfig{Driver: "mysql", DSN: "dsn"},
			Cart:        CartConfig{LowStockThreshold: 5},
			Shipping:    ShippingConfig{FlatFee: "4.90", FrancoThreshold: "49"},
		}
	}

	tests := map[string]struct {
		mutate  func(*Config)
		wantErr string
	}{
		"ok":                {mutate: func(*Config) {}},
		"no service name":   {mutate: func(c *Config) { c.ServiceName = "" }, wantErr: "service_name"},
		"bad port":          {mutate: func(c *Config) { c.HTTP.Port = 70000 }, wantErr: "HTTP port"},
		"bad driver":        {mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: "unsupported database driver"},
		"no dsn":            {mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: "DSN"},
		"negative low stock": {mutate: func(c *Config) { c.Cart.LowStockThreshold = -1 }, wantErr: "low_stock_threshold"},
		"bad fee":           {mutate: func(c *Config) { c.Shipping.FlatFee = "cheap" }, wantErr: "shipping.flat_fee"},
		"negative franco":   {mutate: func(c *Config) { c.Shipping.FrancoThreshold = "-1" }, wantErr: "shipping.franco_threshold"},
		"rate limit no qps": {mutate: func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true} }, wantErr: "rate_limit"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "dev", cfg.Environment)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
