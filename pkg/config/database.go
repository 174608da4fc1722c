package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connections.
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
}

// InitDB initializes and returns the database connections. Redis is optional:
// when cfg.RedisAddr is empty the feed cache is simply disabled.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	postgresDB, err := initPostgres(cfg.PostgresConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = initRedis(cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
	}

	return &DB{
		Postgres: postgresDB,
		Mongo:    mongoClient,
		Redis:    redisClient,
	}, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM.
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL!")
	return db, nil
}

// initMongo initializes the MongoDB connection.
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// initRedis initializes the Redis connection used by the feed cache.
func initRedis(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to Redis!")
	return client, nil
}

// CloseDB closes the database connections.
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		sqlDB, err := db.Postgres.DB()
		if err != nil {
			log.Printf("Error getting SQL DB from GORM: %v\n", err)
		} else if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing PostgreSQL connection: %v\n", err)
		} else {
			log.Println("PostgreSQL connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v\n", err)
		} else {
			log.Println("Redis connection closed.")
		}
	}
}
