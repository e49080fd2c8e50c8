package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is
// built once in main and handed to the components that need it, nothing
// reads os.Getenv after startup.
type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string

	AllowOrigins []string

	CloudinaryURL string

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	GinMode string
}

// Load reads .env (if present) and the process environment.
// JWT_SECRET and MONGODB_URI are mandatory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		DBName:          getenv("DB_NAME", "gg"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CloudinaryURL:   os.Getenv("CLOUDINARY_URL"),
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubscriber: getenv("VAPID_SUBSCRIBER", "mailto:admin@gg.social"),
		GinMode:         getenv("GIN_MODE", "debug"),
	}

	if origins := os.Getenv("ALLOW_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5500", "http://127.0.0.1:5500"}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGODB_URI must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
