package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
// A .env file in the working directory is loaded first when present.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"tienda"`

	RedisAddr     string `envconfig:"REDIS_HOST" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"tienda-images"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"super_secret"`

	// Store origin and the delivery radius around it.
	StoreLat    float64 `envconfig:"STORE_LAT" default:"40.4168"`
	StoreLon    float64 `envconfig:"STORE_LON" default:"-3.7038"`
	MaxRadiusKm float64 `envconfig:"MAX_RADIUS_KM" default:"20"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("no .env file found, using system environment")
	} else {
		log.Info(".env file loaded")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &cfg, nil
}
