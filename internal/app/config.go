package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

// minSecretLength is the shortest accepted HS256 key, the size of its output.
const minSecretLength = 32

var errWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", minSecretLength)

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	JWT              JWTConfig
	AMQP             AMQPConfig
	RateLimit        RateLimitConfig
	Seats            SeatsConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
	LockTimeout  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

type SeatsConfig struct {
	SeatsPerRow int
	MaxSeats    int
}

func (c SeatsConfig) Layout() domain.SeatLayout {
	return domain.SeatLayout{
		SeatsPerRow: c.SeatsPerRow,
		MaxSeats:    c.MaxSeats,
	}
}

// parseConfig reads the command line. Every flag defaults to its environment
// variable so a .env file loaded beforehand can seed the configuration.
func parseConfig(fs *flag.FlagSet, args []string) (Config, bool, error) {
	var cfg Config

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envStr("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envStr("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envStr("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDur("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")
	fs.DurationVar(&cfg.DB.LockTimeout, "db-lock-timeout", envDur("DB_LOCK_TIMEOUT", 5*time.Second), "PostgreSQL row lock wait timeout (0 waits forever)")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envStr("REDIS_URL", ""), "Redis address, rate limiting falls back to in-process buckets when empty")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDur("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.JWT.Secret, "jwt-secret", envStr("JWT_SECRET", ""), "HMAC secret of bearer tokens")
	fs.StringVar(&cfg.JWT.Issuer, "jwt-issuer", envStr("JWT_ISSUER", ""), "Expected bearer token issuer, unchecked when empty")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", envStr("AMQP_URL", ""), "RabbitMQ URL, reservation events are not published when empty")
	fs.StringVar(&cfg.AMQP.Exchange, "amqp-exchange", envStr("AMQP_EXCHANGE", "reservations"), "RabbitMQ topic exchange for reservation events")

	fs.BoolVar(&cfg.RateLimit.Enabled, "rate-limit-enabled", envBool("RATE_LIMIT_ENABLED", true), "Rate limit reservation requests")
	fs.IntVar(&cfg.RateLimit.Capacity, "rate-limit-capacity", envInt("RATE_LIMIT_CAPACITY", 20), "Token bucket capacity per caller")
	fs.IntVar(&cfg.RateLimit.RefillTokens, "rate-limit-refill-tokens", envInt("RATE_LIMIT_REFILL_TOKENS", 1), "Tokens added per refill interval")
	fs.DurationVar(&cfg.RateLimit.RefillInterval, "rate-limit-refill-interval", envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second), "Token bucket refill interval")
	fs.DurationVar(&cfg.RateLimit.TTL, "rate-limit-ttl", envDur("RATE_LIMIT_TTL", 10*time.Minute), "Idle bucket expiry")

	fs.IntVar(&cfg.Seats.SeatsPerRow, "seats-per-row", envInt("SEATS_PER_ROW", domain.DefaultSeatsPerRow), "Seats per generated row")
	fs.IntVar(&cfg.Seats.MaxSeats, "max-seats", envInt("MAX_SEATS", domain.DefaultMaxSeats), "Maximum seats of a showtime (0 for no limit)")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if *displayVersion {
		return cfg, true, nil
	}

	err = cfg.JWT.validate()
	if err != nil {
		return Config{}, false, err
	}

	return cfg, false, nil
}

func (c JWTConfig) validate() error {
	if len(c.Secret) < minSecretLength {
		return errWeakSecret
	}

	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}

	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}

	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}

	return def
}
