package configs

import (
	"log"
	"os"
	"sync"
)

// AppConfig holds the application configuration.
// It's populated once by LoadConfig.
var AppConfig Configuration
var once sync.Once

// Configuration defines the structure for application settings.
type Configuration struct {
	JWTSecret       string
	ServerPort      string
	FrontendBaseURL string
}

const (
	defaultJWTSecret       = "deals"                 // Default JWT secret, used if env var is not set.
	envJWTSecretKey        = "JWT_SECRET_KEY"        // Environment variable name for the JWT secret.
	defaultServerPort      = "3000"                  // Default server port.
	envServerPortKey       = "SERVER_PORT"           // Environment variable name for the server port.
	defaultFrontendBaseURL = "http://localhost:3000" // Default frontend base URL, used for CORS.
	envFrontendBaseURLKey  = "FRONTEND_BASE_URL"     // Environment variable name for the frontend base URL.
)

// LoadConfig loads configuration from environment variables or defaults.
// It should be called once at application startup.
func LoadConfig() {
	once.Do(func() {
		jwtSecret := os.Getenv(envJWTSecretKey)
		if jwtSecret == "" {
			jwtSecret = defaultJWTSecret
			log.Printf("Warning: %s is not set. Using the default JWT secret; set it in production.", envJWTSecretKey)
		}

		serverPort := os.Getenv(envServerPortKey)
		if serverPort == "" {
			serverPort = defaultServerPort
			log.Printf("Info: %s is not set. Using default port %s.", envServerPortKey, defaultServerPort)
		}

		frontendBaseURL := os.Getenv(envFrontendBaseURLKey)
		if frontendBaseURL == "" {
			frontendBaseURL = defaultFrontendBaseURL
			log.Printf("Info: %s is not set. Using default frontend URL %s.", envFrontendBaseURLKey, defaultFrontendBaseURL)
		}

		AppConfig = Configuration{
			JWTSecret:       jwtSecret,
			ServerPort:      serverPort,
			FrontendBaseURL: frontendBaseURL,
		}

		log.Println("Application configuration loaded.")
	})
}
