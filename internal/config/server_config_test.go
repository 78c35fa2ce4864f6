package config_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/paypost/go-paypost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestSensitiveValuesAreNotPrinted(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Privy.AppSecret = "super-secret"
	cfg.Database.Password = "db-secret"

	b, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "super-secret")
	assert.NotContains(t, string(b), "db-secret")
}

func TestValidate(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Chain.ModuleAddress = "0xcafe"
	cfg.Privy.AppID = "app"
	cfg.Privy.AppSecret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Chain.ModuleAddress = ""
	require.Error(t, cfg.Validate())

	cfg.Chain.ModuleAddress = "0xcafe"
	cfg.Chain.ConfirmTimeout = 0
	require.Error(t, cfg.Validate())
}

func TestScanConfigFromEnv(t *testing.T) {
	t.Setenv("SCAN_ENABLED", "false")
	t.Setenv("SCAN_INTERVAL_SEC", "5")
	t.Setenv("SCAN_BATCH_SIZE", "7")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.False(t, cfg.Scan.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Scan.Interval)
	assert.Equal(t, 60*time.Second, cfg.Scan.MinAge)
	assert.Equal(t, 7, cfg.Scan.BatchSize)
}

func TestCORSAllowOriginsFromEnv(t *testing.T) {
	t.Setenv("SERVER_ECHO_CORS_ALLOW_ORIGINS", "https://app.paypost.xyz,http://localhost:3000")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, []string{"https://app.paypost.xyz", "http://localhost:3000"}, cfg.Echo.CORSAllowOrigins)
}

func TestValidateSenderLockTTL(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Chain.ModuleAddress = "0xcafe"
	cfg.Privy.AppID = "app"
	cfg.Privy.AppSecret = "secret"
	cfg.Privy.RequestTimeout = 15 * time.Second
	cfg.Chain.ConfirmTimeout = 30 * time.Second
	cfg.Redis.URL = "redis://localhost:6379/0"

	cfg.Redis.SenderLockTTL = 90 * time.Second
	require.NoError(t, cfg.Validate())

	cfg.Redis.SenderLockTTL = 45 * time.Second
	require.ErrorContains(t, cfg.Validate(), "REDIS_SENDER_LOCK_TTL_SEC")

	cfg.Redis.SenderLockTTL = cfg.MaxSenderLockHold()
	require.Error(t, cfg.Validate())

	cfg.Redis.URL = ""
	require.NoError(t, cfg.Validate())
}

func TestValidateScanWindow(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Chain.ModuleAddress = "0xcafe"
	cfg.Privy.AppID = "app"
	cfg.Privy.AppSecret = "secret"
	cfg.Scan.Enabled = true
	cfg.Scan.MinAge = time.Hour
	cfg.Scan.ExpireAfter = time.Minute
	require.Error(t, cfg.Validate())

	cfg.Scan.Enabled = false
	require.NoError(t, cfg.Validate())
}

func TestConnectionString(t *testing.T) {
	db := config.Database{
		Host:     "localhost",
		Port:     5432,
		Username: "u",
		Password: "p",
		Database: "paypost",
		AdditionalParams: map[string]string{
			"sslmode":          "require",
			"application_name": "paypost",
		},
	}

	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=paypost application_name=paypost sslmode=require", db.ConnectionString())

	db.AdditionalParams = nil
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=paypost sslmode=disable", db.ConnectionString())
}
