package main

import (
	"os"

	"budzet/internal/amqp"
	"budzet/internal/audit"
	"budzet/internal/cli"
	"budzet/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentAudit)

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the audit consumer")
		return 1
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		return 1
	}
	defer client.Close()

	recorder := audit.NewRecorder(logger)
	logger.Info("Starting budzet-audit", log.FieldOperation, log.OpStartup, "queue", cfg.AMQPQueue)

	if err := cli.Run(logger, recorder.Consume(client)); err != nil {
		logger.Error("Message consumption failed", "error", err)
		return 1
	}
	logger.Info("Audit consumer stopped", "events", recorder.Total())
	return 0
}
