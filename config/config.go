package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	FirebaseProjectID string
	DataDir           string

	Debug             bool // mounts the /debug routes
	AllowPublicWrites bool // POST /products and POST /bids without a token
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:              getEnv("PORT", "3000"),
		MongoURI:          mongoURI(),
		DBName:            getEnv("DB_NAME", "smart_db"),
		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		DataDir:           getEnv("DATA_DIR", "data"),
		Debug:             getEnvBool("DEBUG", false),
		AllowPublicWrites: getEnvBool("ALLOW_PUBLIC_WRITES", true),
	}

	// Validate critical configuration
	if AppConfig.FirebaseProjectID == "" {
		log.Println("Warning: FIREBASE_PROJECT_ID is not set. Protected routes will reject every token.")
	}
	if AppConfig.Debug {
		log.Println("Warning: DEBUG is enabled. The /debug routes are unauthenticated.")
	}
}

// mongoURI resolves the connection string: a full MONGODB_URI wins, then
// DB_USER/DB_PASS compose an Atlas URI, then a local instance.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	if user != "" && pass != "" {
		return fmt.Sprintf(
			"mongodb+srv://%s:%s@cluster0.vyznij5.mongodb.net/?retryWrites=true&w=majority&appName=Cluster0",
			user, pass,
		)
	}
	return "mongodb://127.0.0.1:27017"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves an environment variable as a bool or returns the default bool value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
