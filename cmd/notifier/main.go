package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/config"
	"github.com/example/inventra/internal/email"
	"github.com/example/inventra/internal/events"
	"github.com/example/inventra/internal/notify"
)

const consumerGroup = "email-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithField("err", err).Fatal("load configuration")
	}

	log.WithFields(log.Fields{
		"kafka": cfg.Brokers(),
		"topic": cfg.KafkaTopic,
		"group": consumerGroup,
		"smtp":  cfg.SMTPHost + ":" + cfg.SMTPPort,
	}).Info("starting inventra notifier")

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notify.NewHandler(emailSvc, cfg.AlertEmail)

	consumer := events.NewConsumer(cfg.Brokers(), cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Info("starting event consumer")
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil {
			if ctx.Err() == nil {
				log.WithField("err", err).Error("consumer error")
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()
}
