// cmd/funnel-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"funnel-workers/internal/common/aws"
	"funnel-workers/internal/common/camunda"
	"funnel-workers/internal/common/config"
	"funnel-workers/internal/common/crm"
	"funnel-workers/internal/common/database"
	"funnel-workers/internal/common/logger"
	"funnel-workers/internal/common/observability"
	"funnel-workers/internal/common/payment"
	"funnel-workers/internal/common/slack"
	"funnel-workers/pkg/registry"

	// Quiz Workers (4)
	cp "funnel-workers/internal/workers/quiz/classify-persona"
	ss "funnel-workers/internal/workers/quiz/select-strategy"
	sq "funnel-workers/internal/workers/quiz/submit-quiz"
	vqa "funnel-workers/internal/workers/quiz/validate-quiz-answers"

	// Lead Workers (3)
	clr "funnel-workers/internal/workers/lead/create-lead-record"
	cls "funnel-workers/internal/workers/lead/crm-lead-sync"
	swe "funnel-workers/internal/workers/lead/send-welcome-email"

	// Funnel Workers (3)
	qrc "funnel-workers/internal/workers/funnel/query-research-content"
	sfc "funnel-workers/internal/workers/funnel/select-funnel-content"
	tc "funnel-workers/internal/workers/funnel/track-conversion"

	// Checkout & Notification Workers (2)
	ccs "funnel-workers/internal/workers/checkout/create-checkout-session"
	nst "funnel-workers/internal/workers/notification/notify-sales-team"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting funnel manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("funnel-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Load Funnel Registry ---
	funnels, err := registry.LoadRegistry(cfg.Funnel.RegistryPath)
	if err != nil {
		zapLog.Fatal("funnel registry load failed", zap.Error(err))
	}
	zapLog.Info("Funnel registry loaded",
		zap.String("path", cfg.Funnel.RegistryPath),
		zap.Strings("funnels", funnels.FunnelIDs()),
	)

	// --- Init External Service Clients ---
	crmClient := crm.NewClient(
		cfg.Integrations.CRM.BaseURL,
		cfg.Integrations.CRM.AuthToken,
		config.GetDuration(cfg.Integrations.CRM.Timeout),
	)

	paymentClient := payment.NewClient(
		cfg.Integrations.Payment.BaseURL,
		cfg.Integrations.Payment.APIKey,
		cfg.Integrations.Payment.VendorID,
		config.GetDuration(cfg.Integrations.Payment.Timeout),
	)

	slackClient := slack.NewWebhookClient(
		cfg.Integrations.Slack.WebhookURL,
		cfg.Integrations.Slack.Channel,
	)

	var sesClient *aws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}

	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	zapLog.Info("All external service clients initialized")

	// --- START: Register ALL 12 Workers ---

	// --- 1. Quiz Workers (4) ---
	if cfg.Workers[vqa.TaskType].Enabled {
		wcfg := vqa.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[vqa.TaskType].Timeout)
		handler := vqa.NewHandler(wcfg, log)
		startWorker(zeebeClient, vqa.TaskType, cfg.Workers[vqa.TaskType], handler, zapLog)
	}

	if cfg.Workers[cp.TaskType].Enabled {
		wcfg := cp.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[cp.TaskType].Timeout)
		handler := cp.NewHandler(wcfg, log)
		startWorker(zeebeClient, cp.TaskType, cfg.Workers[cp.TaskType], handler, zapLog)
	}

	if cfg.Workers[ss.TaskType].Enabled {
		wcfg := ss.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[ss.TaskType].Timeout)
		handler := ss.NewHandler(wcfg, log)
		startWorker(zeebeClient, ss.TaskType, cfg.Workers[ss.TaskType], handler, zapLog)
	}

	if cfg.Workers[sq.TaskType].Enabled {
		wcfg := sq.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[sq.TaskType].Timeout)
		handler := sq.NewHandler(wcfg, log)
		startWorker(zeebeClient, sq.TaskType, cfg.Workers[sq.TaskType], handler, zapLog)
	}

	// --- 2. Lead Workers (3) ---
	if cfg.Workers[clr.TaskType].Enabled {
		wcfg := clr.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[clr.TaskType].Timeout)
		handler := clr.NewHandler(wcfg, pg.DB, log)
		startWorker(zeebeClient, clr.TaskType, cfg.Workers[clr.TaskType], handler, zapLog)
	}

	if cfg.Workers[swe.TaskType].Enabled {
		var emailSender swe.SESService
		if sesClient != nil {
			emailSender = sesClient
		}
		handler := swe.NewHandler(
			&swe.Config{
				EmailEnabled: cfg.Integrations.AWS.SES.Enabled && sesClient != nil,
				FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
				AWSRegion:    cfg.Integrations.AWS.Region,
				Timeout:      config.GetDuration(cfg.Workers[swe.TaskType].Timeout),
			},
			emailSender, funnels, log,
		)
		startWorker(zeebeClient, swe.TaskType, cfg.Workers[swe.TaskType], handler, zapLog)
	}

	if cfg.Workers[cls.TaskType].Enabled {
		wcfg := cls.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[cls.TaskType].Timeout)
		handler := cls.NewHandler(wcfg, crmClient, log)
		startWorker(zeebeClient, cls.TaskType, cfg.Workers[cls.TaskType], handler, zapLog)
	}

	// --- 3. Funnel Workers (3) ---
	if cfg.Workers[sfc.TaskType].Enabled {
		wcfg := sfc.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[sfc.TaskType].Timeout)
		handler := sfc.NewHandler(wcfg, funnels, log)
		startWorker(zeebeClient, sfc.TaskType, cfg.Workers[sfc.TaskType], handler, zapLog)
	}

	if cfg.Workers[qrc.TaskType].Enabled {
		handler := qrc.NewHandler(
			&qrc.Config{
				Timeout: config.GetDuration(cfg.Workers[qrc.TaskType].Timeout),
				Index:   cfg.Funnel.ResearchIndex,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, qrc.TaskType, cfg.Workers[qrc.TaskType], handler, zapLog)
	}

	if cfg.Workers[tc.TaskType].Enabled {
		wcfg := tc.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[tc.TaskType].Timeout)
		handler := tc.NewHandler(wcfg, redis.Client, log)
		startWorker(zeebeClient, tc.TaskType, cfg.Workers[tc.TaskType], handler, zapLog)
	}

	// --- 4. Checkout Worker (1) ---
	if cfg.Workers[ccs.TaskType].Enabled {
		wcfg := ccs.LoadConfig()
		wcfg.Timeout = config.GetDuration(cfg.Workers[ccs.TaskType].Timeout)
		if cfg.Integrations.Payment.ReturnURL != "" {
			wcfg.ReturnURL = cfg.Integrations.Payment.ReturnURL
		}
		handler := ccs.NewHandler(wcfg, paymentClient, log)
		startWorker(zeebeClient, ccs.TaskType, cfg.Workers[ccs.TaskType], handler, zapLog)
	}

	// --- 5. Notification Worker (1) ---
	if cfg.Workers[nst.TaskType].Enabled {
		// A nil *aws.SNSClient must never be stored in the service
		// interface, the handler's nil check cannot see through a
		// typed-nil pointer.
		var smsSender nst.SNSService
		if snsClient != nil {
			smsSender = snsClient
		}
		handler := nst.NewHandler(
			&nst.Config{
				Timeout:        config.GetDuration(cfg.Workers[nst.TaskType].Timeout),
				SlackEnabled:   cfg.Notifications.Slack.Enabled,
				SMSEnabled:     cfg.Notifications.SMS.Enabled && snsClient != nil,
				SMSPhoneNumber: cfg.Notifications.SMS.PhoneNumber,
				HotLeadGoal:    cfg.Notifications.SMS.HotLeadGoal,
			},
			slackClient, smsSender, log,
		)
		startWorker(zeebeClient, nst.TaskType, cfg.Workers[nst.TaskType], handler, zapLog)
	}

	zapLog.Info("All 12 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range activeWorkers {
		w.Stop(shutdownCtx)
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Funnel manager stopped gracefully")
}

var activeWorkers []*camunda.CamundaWorker

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	w := camunda.NewWorker(client, taskType, wcfg.MaxJobsActive, time.Duration(wcfg.Timeout)*time.Millisecond, handler, log)
	activeWorkers = append(activeWorkers, w)
	w.Start()

	log.Info("worker registered",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
