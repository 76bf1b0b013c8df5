package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for both binaries.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Client    ClientConfig    `mapstructure:"client"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// RedisConfig enables cross-instance notification fan-out when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// SchedulerConfig drives the routine-ending reminder job.
type SchedulerConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Spec           string `mapstructure:"spec"`
	ReminderWindow int    `mapstructure:"reminder_window_days"`
}

// ClientConfig is read by the coach CLI.
type ClientConfig struct {
	APIURL              string        `mapstructure:"api_url"`
	WSURL               string        `mapstructure:"ws_url"`
	StorePath           string        `mapstructure:"store_path"`
	NotificationLogSize int           `mapstructure:"notification_log_size"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in the working directory is loaded first, if present.
func LoadConfig(path string) (config Config, err error) {
	if envErr := godotenv.Load(); envErr == nil {
		log.Println("INFO: Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file is fine, defaults and env vars still apply.
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitcoach")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("redis.channel", "fitcoach:notifications")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.spec", "@daily")
	v.SetDefault("scheduler.reminder_window_days", 3)
	v.SetDefault("client.api_url", "http://localhost:8080/api/v1")
	v.SetDefault("client.ws_url", "ws://localhost:8080/api/v1/ws")
	v.SetDefault("client.store_path", "fitcoach.db")
	v.SetDefault("client.notification_log_size", 50)
	v.SetDefault("client.timeout", "15s")

	// AutomaticEnv only resolves keys viper already knows about; these have
	// no default but must still be overridable from the environment.
	for _, key := range []string{
		"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name",
		"jwt.secret", "redis.addr", "redis.password", "redis.db",
	} {
		_ = v.BindEnv(key)
	}
}
