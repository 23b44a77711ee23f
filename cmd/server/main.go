// Command server runs the ticketing ledger HTTP API.
//
// Backend selection is environment-driven: with no configuration the process
// runs fully in memory, which is the mode the test suites exercise. Setting
// TICKETLEDGER_POSTGRES_DSN, TICKETLEDGER_REDIS_URL, or
// TICKETLEDGER_KAFKA_BROKERS swaps in the durable backends one concern at a
// time.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"ticketledger/internal/audit"
	"ticketledger/internal/balance"
	"ticketledger/internal/clock"
	httpapi "ticketledger/internal/http"
	"ticketledger/internal/nftregistry"
	"ticketledger/internal/orgregistry"
	"ticketledger/internal/platform/config"
	"ticketledger/internal/platform/httpserver"
	"ticketledger/internal/platform/logger"
	platformredis "ticketledger/internal/platform/redis"
	"ticketledger/internal/ticketing/handler"
	ticketingmetrics "ticketledger/internal/ticketing/metrics"
	"ticketledger/internal/ticketing/ports"
	"ticketledger/internal/ticketing/service"
	eventstore "ticketledger/internal/ticketing/store/event"
	ticketstore "ticketledger/internal/ticketing/store/ticket"
	id "ticketledger/pkg/domain"
	"ticketledger/pkg/platform/tx"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	checks := map[string]httpapi.HealthChecker{}

	// Event and ticket stores.
	var (
		events   ports.EventStore
		tickets  ports.TicketStore
		txRunner ports.TxRunner
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			return err
		}
		events = eventstore.NewPostgres(db)
		tickets = ticketstore.NewPostgres(db)
		txRunner = tx.NewSQLRunner(db)
		checks["postgres"] = pingChecker{db}
		log.Info("using postgres stores")
	} else {
		events = eventstore.NewInMemory()
		tickets = ticketstore.NewInMemory()
	}

	// Balance ledger.
	var balances ports.BalanceLedger
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		balances = balance.NewRedis(redisClient.Client)
		checks["redis"] = redisClient
		log.Info("using redis balance ledger")
	} else {
		balances = balance.NewInMemory()
	}

	// Audit trail and mint feed.
	var (
		auditStore audit.Store
		mints      ports.NFTRegistry
	)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.KafkaBrokers...),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}
		defer kafkaClient.Close()
		auditStore = audit.NewKafkaStore(kafkaClient, cfg.AuditTopic)
		mints = nftregistry.NewKafka(kafkaClient, cfg.MintTopic)
		log.Info("using kafka audit and mint sinks", "brokers", cfg.KafkaBrokers)
	} else {
		auditStore = audit.NewInMemoryStore()
		mints = nftregistry.NewInMemory()
	}
	auditPublisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithLogger(log),
	)
	defer auditPublisher.Close()

	orgs := orgregistry.NewInMemory(orgIDs(cfg.OrgIDs)...)
	metrics := ticketingmetrics.New()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(metrics),
	}
	if txRunner != nil {
		opts = append(opts, service.WithTxRunner(txRunner))
	}

	svc, err := service.New(
		id.Principal(cfg.OwnerPrincipal),
		events, tickets, orgs, balances, mints,
		clock.NewLogical(),
		opts...,
	)
	if err != nil {
		return err
	}

	h := handler.New(svc, log)
	router := httpapi.NewRouter(h, []byte(cfg.JWTSigningKey), log, checks)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("ticketledger listening", "addr", cfg.Addr, "owner", cfg.OwnerPrincipal)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func orgIDs(raw []int64) []id.OrgID {
	out := make([]id.OrgID, len(raw))
	for i, v := range raw {
		out[i] = id.OrgID(v)
	}
	return out
}

type pingChecker struct {
	db *sql.DB
}

func (p pingChecker) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
