package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "32MB"

	defaultUploadDir         = "uploads"
	defaultUploadFieldName   = "audioFile"
	defaultUploadMaxFileSize = "25MB"

	defaultClassifierFieldName = "file"
	defaultClassifierTimeout   = 60 * time.Second

	defaultSessionTTL    = time.Hour
	defaultOAuthStateTTL = 10 * time.Minute
	defaultFailureURL    = "/"

	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"

	StateProviderMemory = "memory"
	StateProviderRedis  = "redis"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// SecretKey.Session signs and verifies session tokens.
	SecretKey struct {
		Session string `json:"session" yaml:"session"`
	} `json:"secretKey" yaml:"secretKey"`

	Session SessionConfig `json:"session" yaml:"session"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Frontend FrontendConfig `json:"frontend" yaml:"frontend"`

	OAuthState OAuthStateConfig `json:"oauthState" yaml:"oauthState"`

	Store StoreConfig `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Mongo *MongoConfig `json:"mongo" yaml:"mongo"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Upload UploadConfig `json:"upload" yaml:"upload"`

	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`

	// PubSub configuration for classification events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SessionConfig controls issued session tokens.
type SessionConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

type GoogleOAuthConfig struct {
	ClientID     string   `json:"clientId" yaml:"clientId"`
	ClientSecret string   `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string   `json:"redirectUri" yaml:"redirectUri"`
	Scopes       []string `json:"scopes" yaml:"scopes"`
}

// FrontendConfig holds where the browser lands after the OAuth callback.
type FrontendConfig struct {
	RedirectURL string `json:"redirectUrl" yaml:"redirectUrl"`
	FailureURL  string `json:"failureUrl" yaml:"failureUrl"`
}

// OAuthStateConfig selects the CSRF state store used during the Google sign-in flow.
type OAuthStateConfig struct {
	// Provider: "memory" (single instance) or "redis" (shared between replicas)
	Provider string        `json:"provider" yaml:"provider"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"`
}

// StoreConfig selects the identity store backend.
type StoreConfig struct {
	// Driver: "postgres" or "mongo"
	Driver string `json:"driver" yaml:"driver"`
}

// MongoConfig defines the document store connection.
type MongoConfig struct {
	URI            string        `json:"uri" yaml:"uri"`
	Database       string        `json:"database" yaml:"database"`
	Collection     string        `json:"collection" yaml:"collection"`
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout"`
}

type RedisConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// UploadConfig controls the transient upload area.
type UploadConfig struct {
	Dir         string `json:"dir" yaml:"dir"`
	FieldName   string `json:"fieldName" yaml:"fieldName"`
	MaxFileSize string `json:"maxFileSize" yaml:"maxFileSize"` // e.g. "25MB" (decimal) or "24MiB"
}

// ClassifierConfig points at the remote classification service.
type ClassifierConfig struct {
	Endpoint  string        `json:"endpoint" yaml:"endpoint"`
	FieldName string        `json:"fieldName" yaml:"fieldName"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// legacyEnv maps the variable names used by earlier deployments onto config keys.
var legacyEnv = map[string]func(cfg *Config, value string) error{
	"PORT": func(cfg *Config, value string) error {
		port, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "invalid PORT %q", value)
		}
		cfg.HTTP.Port = port

		return nil
	},
	"JWT_SECRET": func(cfg *Config, value string) error {
		cfg.SecretKey.Session = value

		return nil
	},
	"MONGO_URI": func(cfg *Config, value string) error {
		if cfg.Mongo == nil {
			cfg.Mongo = &MongoConfig{}
		}
		cfg.Mongo.URI = value

		return nil
	},
	"GOOGLE_CLIENT_ID": func(cfg *Config, value string) error {
		cfg.ensureGoogleOAuth().ClientID = value

		return nil
	},
	"GOOGLE_CLIENT_SECRET": func(cfg *Config, value string) error {
		cfg.ensureGoogleOAuth().ClientSecret = value

		return nil
	},
	"FRONTEND_URL": func(cfg *Config, value string) error {
		cfg.Frontend.RedirectURL = value

		return nil
	},
	"CLASSIFIER_URL": func(cfg *Config, value string) error {
		cfg.Classifier.Endpoint = value

		return nil
	},
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// GOOGLEOAUTH_CLIENTSECRET -> googleOAuth.clientSecret
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyLegacyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func (cfg *Config) applyLegacyEnv(lookup func(string) (string, bool)) error {
	for name, apply := range legacyEnv {
		value, ok := lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := apply(cfg, value); err != nil {
			return err
		}
	}

	// Legacy deployments only know MONGO_URI; STORE_DRIVER still wins when set.
	if uri, ok := lookup("MONGO_URI"); ok && strings.TrimSpace(uri) != "" {
		if _, explicit := lookup("STORE_DRIVER"); !explicit {
			cfg.Store.Driver = StoreDriverMongo
		}
	}

	return nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.OAuthState.Provider == "" {
		cfg.OAuthState.Provider = StateProviderMemory
	}
	if cfg.OAuthState.TTL <= 0 {
		cfg.OAuthState.TTL = defaultOAuthStateTTL
	}
	if cfg.Frontend.FailureURL == "" {
		cfg.Frontend.FailureURL = defaultFailureURL
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = StoreDriverPostgres
		if cfg.Mongo != nil && cfg.Mongo.URI != "" {
			cfg.Store.Driver = StoreDriverMongo
		}
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = defaultUploadDir
	}
	if cfg.Upload.FieldName == "" {
		cfg.Upload.FieldName = defaultUploadFieldName
	}
	if cfg.Upload.MaxFileSize == "" {
		cfg.Upload.MaxFileSize = defaultUploadMaxFileSize
	}
	if cfg.Classifier.FieldName == "" {
		cfg.Classifier.FieldName = defaultClassifierFieldName
	}
	if cfg.Classifier.Timeout <= 0 {
		cfg.Classifier.Timeout = defaultClassifierTimeout
	}
}

func (cfg *Config) ensureGoogleOAuth() *GoogleOAuthConfig {
	if cfg.GoogleOAuth == nil {
		cfg.GoogleOAuth = &GoogleOAuthConfig{}
	}

	return cfg.GoogleOAuth
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
