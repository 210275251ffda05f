package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Which backing store serves mentors ("mongo", "firestore", "memory") and sessions ("mongo", "memory").
	MentorStore  string `mapstructure:"MENTOR_STORE"`
	SessionStore string `mapstructure:"SESSION_STORE"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisDeviceDB    int    `mapstructure:"REDIS_DEVICE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Firebase (Firestore mentor store, FCM pushes).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`

	// RabbitMQ domain events. An empty URL disables publishing.
	RabbitURL      string `mapstructure:"RABBIT_URL"`
	EventsExchange string `mapstructure:"EVENTS_EXCHANGE"`

	// Google Calendar push. An empty path disables calendar sync.
	GoogleCalendarCredentialsFile string `mapstructure:"GOOGLE_CALENDAR_CREDENTIALS_FILE"`

	SchedulingApplyOverrides bool `mapstructure:"SCHEDULING_APPLY_OVERRIDES"`
	SchedulingApplyBlocked   bool `mapstructure:"SCHEDULING_APPLY_BLOCKED"`
	SchedulingRequireCover   bool `mapstructure:"SCHEDULING_REQUIRE_COVERAGE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "mentorship")
	viper.SetDefault("MENTOR_STORE", "mongo")
	viper.SetDefault("SESSION_STORE", "mongo")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_DEVICE_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("RABBIT_URL", "")
	viper.SetDefault("EVENTS_EXCHANGE", "mentorship.events")
	viper.SetDefault("GOOGLE_CALENDAR_CREDENTIALS_FILE", "")
	viper.SetDefault("SCHEDULING_APPLY_OVERRIDES", false)
	viper.SetDefault("SCHEDULING_APPLY_BLOCKED", false)
	viper.SetDefault("SCHEDULING_REQUIRE_COVERAGE", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMongo reports whether any store is backed by MongoDB.
func UsesMongo() bool {
	return AppConfig.MentorStore == "mongo" || AppConfig.SessionStore == "mongo"
}
