package config

import (
	"time"

	"github.com/kat-co/vala"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	BaseURL                        string
	EnableCORSMiddleware           bool
	CORSAllowOrigins               []string
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableTrailingSlashMiddleware  bool
	EnablePrometheusMiddleware     bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogRequestHeader   bool
	LogRequestQuery    bool
	LogResponseBody    bool
	LogResponseHeader  bool
	LogCaller          bool
	PrettyPrintConsole bool
}

type ManagementServer struct {
	ReadinessTimeout time.Duration
	LivenessTimeout  time.Duration
}

// Chain configures the Aptos/Movement node and the PayPost Move module.
type Chain struct {
	NodeURL        string
	NetworkName    string
	ChainID        uint8
	ModuleAddress  string
	ConfirmTimeout time.Duration
	PollPeriod     time.Duration
	MaxGasAmount   uint64
}

// Privy configures the custodial wallet provider.
type Privy struct {
	BaseURL        string
	AppID          string
	AppSecret      string `json:"-"` // sensitive
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
}

// senderLockSlack covers building and submitting a transaction while the sender lock is held.
const senderLockSlack = 15 * time.Second

type Redis struct {
	URL           string
	SenderLockTTL time.Duration
}

// Scan configures the background reconciliation of unresolved transactions.
type Scan struct {
	Enabled     bool
	Interval    time.Duration
	MinAge      time.Duration
	ExpireAfter time.Duration
	BatchSize   int
}

type Tracing struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

type Server struct {
	Database   Database
	Echo       EchoServer
	Management ManagementServer
	Logger     LoggerServer
	Chain      Chain
	Privy      Privy
	Redis      Redis
	Scan       Scan
	Tracing    Tracing
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Database: util.GetEnv("PGDATABASE", "paypost"),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: util.GetEnvAsInt("DB_CONN_MAX_LIFETIME_SEC", 1800),
		},
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			BaseURL:                        util.GetEnv("SERVER_ECHO_BASE_URL", "http://localhost:8080"),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			CORSAllowOrigins:               util.GetEnvAsStringArr("SERVER_ECHO_CORS_ALLOW_ORIGINS", []string{"*"}),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
			EnablePrometheusMiddleware:     util.GetEnvAsBool("SERVER_ECHO_ENABLE_PROMETHEUS_MIDDLEWARE", true),
		},
		Management: ManagementServer{
			ReadinessTimeout: time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_READINESS_TIMEOUT_SEC", 4)),
			LivenessTimeout:  time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_LIVENESS_TIMEOUT_SEC", 9)),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogRequestHeader:   util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_HEADER", false),
			LogRequestQuery:    util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_QUERY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			LogResponseHeader:  util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_HEADER", false),
			LogCaller:          util.GetEnvAsBool("SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Chain: Chain{
			NodeURL:        util.GetEnv("CHAIN_NODE_URL", "https://aptos.testnet.porto.movementlabs.xyz/v1"),
			NetworkName:    util.GetEnv("CHAIN_NETWORK_NAME", "movement-testnet"),
			ChainID:        util.GetEnvAsUint8("CHAIN_ID", 177),
			ModuleAddress:  util.GetEnv("PAYPOST_MODULE_ADDRESS", ""),
			ConfirmTimeout: time.Second * time.Duration(util.GetEnvAsInt("CHAIN_CONFIRM_TIMEOUT_SEC", 30)),
			PollPeriod:     time.Millisecond * time.Duration(util.GetEnvAsInt("CHAIN_POLL_PERIOD_MS", 500)),
			MaxGasAmount:   uint64(util.GetEnvAsInt("CHAIN_MAX_GAS_AMOUNT", 100000)), //nolint:gosec // configured value is non-negative
		},
		Privy: Privy{
			BaseURL:        util.GetEnv("PRIVY_BASE_URL", "https://api.privy.io"),
			AppID:          util.GetEnv("PRIVY_APP_ID", ""),
			AppSecret:      util.GetEnv("PRIVY_APP_SECRET", ""),
			RequestTimeout: time.Second * time.Duration(util.GetEnvAsInt("PRIVY_REQUEST_TIMEOUT_SEC", 15)),
			RateLimit:      util.GetEnvAsFloat("PRIVY_RATE_LIMIT_RPS", 10),
			RateBurst:      util.GetEnvAsInt("PRIVY_RATE_LIMIT_BURST", 20),
		},
		Redis: Redis{
			URL:           util.GetEnv("REDIS_URL", ""),
			SenderLockTTL: time.Second * time.Duration(util.GetEnvAsInt("REDIS_SENDER_LOCK_TTL_SEC", 90)),
		},
		Scan: Scan{
			Enabled:     util.GetEnvAsBool("SCAN_ENABLED", true),
			Interval:    time.Second * time.Duration(util.GetEnvAsInt("SCAN_INTERVAL_SEC", 15)),
			MinAge:      time.Second * time.Duration(util.GetEnvAsInt("SCAN_MIN_AGE_SEC", 60)),
			ExpireAfter: time.Second * time.Duration(util.GetEnvAsInt("SCAN_EXPIRE_AFTER_SEC", 900)),
			BatchSize:   util.GetEnvAsInt("SCAN_BATCH_SIZE", 50),
		},
		Tracing: Tracing{
			Endpoint:    util.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    util.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: util.GetEnv("OTEL_SERVICE_NAME", "paypost"),
		},
	}
}

// Validate checks the settings the transaction pipeline cannot run without.
func (c Server) Validate() error {
	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.Echo.ListenAddress, "SERVER_ECHO_LISTEN_ADDRESS"),
		vala.StringNotEmpty(c.Chain.NodeURL, "CHAIN_NODE_URL"),
		vala.StringNotEmpty(c.Chain.ModuleAddress, "PAYPOST_MODULE_ADDRESS"),
		vala.StringNotEmpty(c.Privy.BaseURL, "PRIVY_BASE_URL"),
		vala.StringNotEmpty(c.Privy.AppID, "PRIVY_APP_ID"),
		vala.StringNotEmpty(c.Privy.AppSecret, "PRIVY_APP_SECRET"),
	).Check()
	if err != nil {
		return errors.Wrap(err, "invalid server config")
	}

	if c.Chain.ConfirmTimeout <= 0 {
		return errors.New("invalid server config: CHAIN_CONFIRM_TIMEOUT_SEC must be positive")
	}

	if c.Redis.URL != "" && c.Redis.SenderLockTTL <= c.MaxSenderLockHold() {
		return errors.Errorf("invalid server config: REDIS_SENDER_LOCK_TTL_SEC must exceed %s (PRIVY_REQUEST_TIMEOUT_SEC + CHAIN_CONFIRM_TIMEOUT_SEC + %s)",
			c.MaxSenderLockHold(), senderLockSlack)
	}

	if c.Scan.Enabled && c.Scan.ExpireAfter < c.Scan.MinAge {
		return errors.New("invalid server config: SCAN_EXPIRE_AFTER_SEC must not be lower than SCAN_MIN_AGE_SEC")
	}

	return nil
}

// MaxSenderLockHold is the longest a single submission keeps its sender locked.
func (c Server) MaxSenderLockHold() time.Duration {
	return c.Privy.RequestTimeout + c.Chain.ConfirmTimeout + senderLockSlack
}
