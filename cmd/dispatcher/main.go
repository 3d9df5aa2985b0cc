package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"campusdelivery/cmd"
	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/adapters/out/rabbitmq"
	"campusdelivery/internal/dispatch"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"go.temporal.io/sdk/client"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	publisher, err := rabbitmq.Dial(configs.RabbitMQURL, configs.RabbitMQExchange)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	c, err := client.Dial(client.Options{
		HostPort:  configs.TemporalHost,
		Namespace: configs.TemporalNamespace,
		Logger:    temporallog.NewStructuredLogger(logger),
	})
	if err != nil {
		log.Fatalf("Unable to create Temporal client: %v", err)
	}
	defer c.Close()

	taskQueue := configs.DispatchTaskQueue
	if taskQueue == "" {
		taskQueue = dispatch.DefaultTaskQueue
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	w := worker.New(c, taskQueue, worker.Options{
		Identity: "order-dispatcher-" + hostname(),
	})
	dispatch.Register(w, app.CreateDispatchActivities(publisher))

	logger.Info("Dispatch worker starting", "task_queue", taskQueue)
	if err = w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("Unable to start worker: %v", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err = config.ValidateForDispatcher(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
