package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
)

const (
	createSyncEventsTable = `
CREATE TABLE IF NOT EXISTS sync_events
(
	topic       LowCardinality(String),
	payload     String,
	occurred_at DateTime64(3, 'UTC'),
	ingested_at DateTime DEFAULT now()
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(occurred_at)
ORDER BY (topic, occurred_at);
`
	insertSyncEvent = "INSERT INTO sync_events (topic, payload, occurred_at)"
)

type batchAppender interface {
	Append(v ...any) error
	Send() error
}

// ClickHouseSink grava o histórico de eventos de sincronização para análise
type ClickHouseSink struct {
	conn    clickhouse.Conn
	prepare func(ctx context.Context, query string) (batchAppender, error)
}

func NewClickHouseSink(ctx context.Context, cfg config.ClickHouse) (*ClickHouseSink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		DialTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com o ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("erro ao conectar no ClickHouse: %w", err)
	}

	if err := conn.Exec(ctx, createSyncEventsTable); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("erro ao criar tabela sync_events: %w", err)
	}

	logrus.WithField("addr", cfg.Addr).Info("Histórico de eventos no ClickHouse habilitado")

	return newClickHouseSink(conn), nil
}

func newClickHouseSink(conn clickhouse.Conn) *ClickHouseSink {
	return &ClickHouseSink{
		conn: conn,
		prepare: func(ctx context.Context, query string) (batchAppender, error) {
			batch, err := conn.PrepareBatch(ctx, query)
			if err != nil {
				return nil, err
			}
			return batch, nil
		},
	}
}

func (s *ClickHouseSink) Name() string {
	return "clickhouse"
}

func (s *ClickHouseSink) Deliver(ctx context.Context, event Event) error {
	payload, err := jsoniter.MarshalToString(event.Payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar evento: %w", err)
	}

	batch, err := s.prepare(ctx, insertSyncEvent)
	if err != nil {
		return fmt.Errorf("erro ao preparar lote: %w", err)
	}

	if err := batch.Append(event.Topic, payload, event.OccurredAt.UTC()); err != nil {
		return fmt.Errorf("erro ao adicionar evento ao lote: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("erro ao enviar lote: %w", err)
	}

	return nil
}

func (s *ClickHouseSink) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
