package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/wendynovel0/prueba/internal/domain/model"
	"github.com/wendynovel0/prueba/internal/repository"
	"github.com/wendynovel0/prueba/internal/telemetry"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

const defaultWriteTimeout = 5 * time.Second

// Entry is one completed action to be recorded.
type Entry struct {
	Action    ActionType
	Table     string
	RecordID  int64
	OldValues Values
	NewValues Values
}

// Logger persists audit records. Failures are reported to the operator log
// and never returned: the primary operation does not depend on it.
type Logger struct {
	repo    repository.AuditLogRepository
	log     zerolog.Logger
	now     func() time.Time
	timeout time.Duration
}

type Option func(*Logger)

func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithWriteTimeout bounds each audit insert.
func WithWriteTimeout(d time.Duration) Option {
	return func(l *Logger) {
		if d > 0 {
			l.timeout = d
		}
	}
}

func NewLogger(repo repository.AuditLogRepository, log zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{
		repo:    repo,
		log:     log.With().Str("component", "audit").Logger(),
		now:     time.Now,
		timeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record writes one audit record for p. It returns nil when the record was
// suppressed (no principal, missing target) or could not be stored.
func (l *Logger) Record(ctx context.Context, p *Principal, e Entry, prov Provenance) (rec *model.AuditLog) {
	if p == nil || p.UserID <= 0 {
		l.log.Warn().
			Str("action_type", string(e.Action)).
			Str("table_affected", e.Table).
			Int64("record_id", e.RecordID).
			Msg("audit record attempted without authenticated user")
		telemetry.AuditRecordsTotal.WithLabelValues(telemetry.AuditResultSuppressed).Inc()
		return nil
	}

	if e.Action == "" || strings.TrimSpace(e.Table) == "" || e.RecordID <= 0 {
		l.log.Warn().
			Int64("user_id", p.UserID).
			Str("action_type", string(e.Action)).
			Str("table_affected", e.Table).
			Int64("record_id", e.RecordID).
			Msg("audit record missing action, table or record id")
		telemetry.AuditRecordsTotal.WithLabelValues(telemetry.AuditResultSuppressed).Inc()
		return nil
	}
	if !e.Action.Known() {
		l.log.Warn().Str("action_type", string(e.Action)).Msg("non-canonical audit action type")
	}

	entry := &model.AuditLog{
		UserID:          p.UserID,
		ActionType:      string(e.Action),
		TableAffected:   e.Table,
		RecordID:        e.RecordID,
		OldValues:       l.encode(e, "old_values", e.OldValues),
		NewValues:       l.encode(e, "new_values", e.NewValues),
		ActionTimestamp: l.now(),
		IPAddress:       optional(prov.IPAddress),
		UserAgent:       optional(prov.UserAgent),
	}

	//リクエストが中断されても書き込みは続ける
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).
				Int64("user_id", p.UserID).
				Str("action_type", entry.ActionType).
				Msg("audit record write panicked")
			telemetry.AuditRecordsTotal.WithLabelValues(telemetry.AuditResultFailed).Inc()
			rec = nil
		}
	}()

	if err := l.repo.Create(wctx, entry); err != nil {
		l.log.Error().Err(err).
			Int64("user_id", p.UserID).
			Str("action_type", entry.ActionType).
			Str("table_affected", entry.TableAffected).
			Int64("record_id", entry.RecordID).
			Msg("failed to store audit record")
		telemetry.AuditRecordsTotal.WithLabelValues(telemetry.AuditResultFailed).Inc()
		return nil
	}

	l.log.Info().
		Int64("log_id", entry.LogID).
		Int64("user_id", entry.UserID).
		Str("action_type", entry.ActionType).
		Str("table_affected", entry.TableAffected).
		Int64("record_id", entry.RecordID).
		Msg("audit record stored")
	telemetry.AuditRecordsTotal.WithLabelValues(telemetry.AuditResultRecorded).Inc()
	return entry
}

// RecordFromContext takes principal and provenance from ctx.
func (l *Logger) RecordFromContext(ctx context.Context, e Entry) *model.AuditLog {
	return l.Record(ctx, PrincipalFrom(ctx), e, ProvenanceFrom(ctx))
}

// nilはSQLのNULLになる
func (l *Logger) encode(e Entry, column string, v Values) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		l.log.Warn().Err(err).
			Str("column", column).
			Str("table_affected", e.Table).
			Int64("record_id", e.RecordID).
			Msg("could not encode audit snapshot")
		return nil
	}
	return datatypes.JSON(b)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
