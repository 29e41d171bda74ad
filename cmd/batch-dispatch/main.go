// cmd/batch-dispatch/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"autoremind-core/internal/channel"
	"autoremind-core/internal/common/aws"
	"autoremind-core/internal/common/config"
	"autoremind-core/internal/common/database"
	"autoremind-core/internal/common/logger"
	"autoremind-core/internal/common/observability"
	"autoremind-core/internal/dispatch"
)

func main() {
	var (
		filePath    = flag.String("file", "", "path to the batch CSV file")
		channelName = flag.String("channel", "email", "delivery channel: email or sms")
		concurrency = flag.Int("concurrency", 0, "concurrent sends (0 = use config)")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: batch-dispatch -file <batch.csv> [-concurrency N]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("batch-dispatch")
	defer obs.Shutdown()

	ctx := context.Background()

	requests, err := dispatch.LoadMessageRequests(*filePath)
	if err != nil {
		zapLog.Fatal("batch file load failed", zap.Error(err))
	}
	zapLog.Info("batch file loaded", zap.String("file", *filePath), zap.Int("rows", len(requests)))

	var sender channel.Adapter
	switch *channelName {
	case "email":
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("SES client init failed", zap.Error(err))
		}
		sender, err = channel.NewEmailAdapter(sesClient, cfg.Notifications.Email.FromEmail, cfg.Notifications.Email.Operators, log)
		if err != nil {
			zapLog.Fatal("email adapter init failed", zap.Error(err))
		}
	case "sms":
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("SNS client init failed", zap.Error(err))
		}
		sender, err = channel.NewSMSAdapter(snsClient, cfg.Notifications.SMS.SenderID, log)
		if err != nil {
			zapLog.Fatal("SMS adapter init failed", zap.Error(err))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown channel %q (want email or sms)\n", *channelName)
		os.Exit(2)
	}

	var audit *dispatch.AuditStore
	if cfg.Database.Redis.Address != "" {
		redis, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Warn("redis unavailable, skipping audit persistence", zap.Error(err))
		} else {
			defer redis.Close()
			audit = dispatch.NewAuditStore(redis, time.Duration(cfg.Dispatch.AuditTTLHours)*time.Hour)
		}
	}

	n := cfg.Dispatch.Concurrency
	if *concurrency > 0 {
		n = *concurrency
	}

	dispatcher := dispatch.NewDispatcher(sender, audit, log, n, config.GetDuration(cfg.Dispatch.SendTimeout))

	report, err := dispatcher.Dispatch(ctx, requests)
	if err != nil {
		zapLog.Error("report persistence failed", zap.Error(err))
	}

	for _, outcome := range report.Outcomes {
		if outcome.Success {
			obs.RecordSendProcessed(ctx, *channelName, "sent")
			zapLog.Info("sent", zap.String("recipient", outcome.Recipient), zap.String("messageId", outcome.MessageID))
		} else {
			obs.RecordSendProcessed(ctx, *channelName, "failed")
			zapLog.Warn("failed", zap.String("recipient", outcome.Recipient), zap.String("error", outcome.Error))
		}
	}
	obs.RecordSendDuration(ctx, report.FinishedAt.Sub(report.StartedAt), *channelName)

	fmt.Printf("run %s: %d successful, %d failed, %d total\n",
		report.RunID, report.Successful, report.Failed, report.Total)

	if report.Failed > 0 {
		os.Exit(1)
	}
}
