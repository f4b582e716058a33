package database

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda_back_end/internal/config"
)

// Databases bundles the external connections. It is constructed once in
// main and handed to the components that need it, there is no package
// level connection state.
type Databases struct {
	Mongo *mongo.Database
	Redis *redis.Client
	MinIO *minio.Client
}

// Connect opens Mongo, Redis and MinIO and pings each one so a broken
// endpoint fails at boot instead of on the first request. MinIO is
// optional: with no endpoint configured image handling is disabled.
func Connect(ctx context.Context, cfg *config.Config) (*Databases, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mongoDB, err := connectMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}

	minioClient, err := connectMinIO(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.Info("all databases connected")
	return &Databases{Mongo: mongoDB, Redis: redisClient, MinIO: minioClient}, nil
}

func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongodb")
	}
	log.WithField("database", cfg.MongoDatabase).Info("connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// ensureIndexes creates the unique indexes the stores rely on: one user
// per email, one product per name.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "create users email index")
	}

	_, err = db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "create products name index")
	}
	return nil
}

func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	log.WithField("addr", cfg.RedisAddr).Info("connected to Redis")
	return client, nil
}

func connectMinIO(ctx context.Context, cfg *config.Config) (*minio.Client, error) {
	if cfg.MinioEndpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, product image storage disabled")
		return nil, nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to minio")
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, errors.Wrap(err, "check minio bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "create minio bucket")
		}
		log.WithField("bucket", cfg.MinioBucket).Info("bucket created")
	}

	log.WithField("endpoint", cfg.MinioEndpoint).Info("connected to MinIO")
	return client, nil
}
