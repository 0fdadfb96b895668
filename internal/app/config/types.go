package config

import (
	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Router         *chi.Mux
		MongoDB        *mongo.Client
		Redis          *redis.Client
		Minio          *minio.Client
		RabbitMQ       *amqp091.Connection
		Logger         *zap.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Minio    Minio
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	InternalConfig struct {
		App        App
		JWT        JWT
		Classifier Classifier
	}

	App struct {
		Env                        string
		Port                       string
		ShutdownTimeout            int
		MaxRequests                int
		RequestBodyLimitInMegabyte int64
		EventQueue                 string
		AdminEmail                 string
		AdminPassword              string
		AdminNome                  string
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Minio struct {
		Host       string
		Port       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	JWT struct {
		Secret        string
		ExpTimeInHour int
	}
	Classifier struct {
		BaseURL          string
		TimeoutInSeconds int
	}
)
