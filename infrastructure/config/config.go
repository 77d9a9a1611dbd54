package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion string

	// Cognito configuration
	UserPoolID       string
	UserPoolClientID string

	// DynamoDB tables
	UsersTable    string
	BookingsTable string
	CoursesTable  string

	// DynamoDB indexes
	UserBookingsIndex string
	CoachBookingsIndex string
	CoachCoursesIndex string

	// S3 configuration
	UploadsBucket string

	// EventBridge configuration
	EventBusName string

	// Lambda configuration
	IsLambda bool

	// Session cookies
	CookieDomain string
	SecureCookies bool

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		UserPoolID:       getEnv("COGNITO_USER_POOL_ID", ""),
		UserPoolClientID: getEnv("COGNITO_CLIENT_ID", ""),

		UsersTable:    getEnv("DYNAMODB_USERS_TABLE", "pathshala-users"),
		BookingsTable: getEnv("DYNAMODB_BOOKINGS_TABLE", "pathshala-bookings"),
		CoursesTable:  getEnv("DYNAMODB_COURSES_TABLE", "pathshala-courses"),

		UserBookingsIndex:  getEnv("USER_BOOKINGS_INDEX", "UserBookingsIndex"),
		CoachBookingsIndex: getEnv("COACH_BOOKINGS_INDEX", "CoachBookingsIndex"),
		CoachCoursesIndex:  getEnv("COACH_COURSES_INDEX", "CoachCoursesIndex"),

		UploadsBucket: getEnv("S3_UPLOADS_BUCKET", ""),
		EventBusName:  getEnv("EVENT_BUS_NAME", ""),

		IsLambda: getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "",

		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		SecureCookies: getEnvBool("SECURE_COOKIES", false),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.UserPoolClientID == "" {
		return fmt.Errorf("COGNITO_CLIENT_ID is required")
	}
	if c.Environment == "production" {
		if c.UserPoolID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID is required in production")
		}
		if c.UploadsBucket == "" {
			return fmt.Errorf("S3_UPLOADS_BUCKET is required in production")
		}
		if !c.SecureCookies {
			return fmt.Errorf("SECURE_COOKIES must be enabled in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
