package config

import (
	"crypto/rand"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable through STORE_BACKEND.
const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Event buses selectable through EVENT_BUS.
const (
	BusNone  = "none"
	BusRedis = "redis"
	BusNATS  = "nats"
)

type Config struct {
	Port string

	StoreBackend string
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	SQLitePath   string

	EventBus string
	NATSURL  string

	JWTSecret         []byte
	AdminPassword     string
	AdminPasswordHash string

	CountryCode   string
	OrderExpiry   time.Duration
	SweepInterval time.Duration

	UploadDir      string
	AllowedOrigins []string
	BusinessName   string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, which keeps tests away
// from the real environment.
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	port := get("PORT", ":8080")
	if port[0] != ':' {
		port = ":" + port
	}

	cfg := &Config{
		Port:              port,
		StoreBackend:      strings.ToLower(get("STORE_BACKEND", BackendMongo)),
		MongoURI:          get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           get("MONGO_DB", "broilers"),
		RedisAddr:         get("REDIS_ADDR", "localhost:6379"),
		RedisPass:         get("REDIS_PASSWORD", ""),
		SQLitePath:        get("SQLITE_PATH", "./broilers.db"),
		EventBus:          strings.ToLower(get("EVENT_BUS", BusNone)),
		NATSURL:           get("NATS_URL", "nats://localhost:4222"),
		AdminPassword:     get("ADMIN_PASSWORD", ""),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),
		CountryCode:       get("COUNTRY_CODE", "91"),
		UploadDir:         get("UPLOAD_DIR", "static/uploads"),
		BusinessName:      get("BUSINESS_NAME", "Srinivasa Broilers"),
	}

	cfg.RedisDB, _ = strconv.Atoi(get("REDIS_DB", "0"))
	cfg.OrderExpiry = duration(get("ORDER_EXPIRY", "18h"), 18*time.Hour)
	cfg.SweepInterval = duration(get("SWEEP_INTERVAL", "0"), 0)

	for _, o := range strings.Split(get("ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	secret := get("JWT_SECRET", "")
	if secret == "" {
		log.Println("JWT_SECRET not set; using a random secret, admin tokens will not survive a restart")
		secret = rand.Text()
	}
	cfg.JWTSecret = []byte(secret)

	return cfg
}

func duration(v string, def time.Duration) time.Duration {
	if v == "0" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("invalid duration %q, using %s", v, def)
		return def
	}
	return d
}
