package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Built from environment
// variables so main stays lean; zero values select the in-memory backends.
type Server struct {
	Addr           string
	OwnerPrincipal string
	JWTSigningKey  string

	// Seeded org registry memberships.
	OrgIDs []int64

	// Backends. Empty values mean in-memory.
	PostgresDSN  string
	RedisURL     string
	KafkaBrokers []string
	AuditTopic   string
	MintTopic    string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:            envOr("TICKETLEDGER_ADDR", ":8080"),
		OwnerPrincipal:  envOr("TICKETLEDGER_OWNER", "ST1TEST"),
		JWTSigningKey:   envOr("TICKETLEDGER_JWT_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:     os.Getenv("TICKETLEDGER_POSTGRES_DSN"),
		RedisURL:        os.Getenv("TICKETLEDGER_REDIS_URL"),
		AuditTopic:      envOr("TICKETLEDGER_AUDIT_TOPIC", "ticketledger.audit"),
		MintTopic:       envOr("TICKETLEDGER_MINT_TOPIC", "ticketledger.mints"),
		ShutdownTimeout: 10 * time.Second,
	}

	if brokers := os.Getenv("TICKETLEDGER_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	for _, raw := range strings.Split(envOr("TICKETLEDGER_ORG_IDS", "1"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if orgID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.OrgIDs = append(cfg.OrgIDs, orgID)
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
