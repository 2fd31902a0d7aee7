package audit

import (
	"context"
	"errors"

	"github.com/wendynovel0/prueba/internal/repository"

	"github.com/rs/zerolog"
)

// Operation describes the mutation being audited. RecordID may be zero for
// creates; it is then taken from the primary key of the mutation result.
type Operation struct {
	Action   ActionType
	Table    string
	RecordID int64
}

// Interceptor sequences before-snapshot, mutation and audit write.
type Interceptor struct {
	logger *Logger
	log    zerolog.Logger
}

func NewInterceptor(logger *Logger, log zerolog.Logger) *Interceptor {
	return &Interceptor{
		logger: logger,
		log:    log.With().Str("component", "audit").Logger(),
	}
}

// Track loads the current state (for actions that read it), runs mutate
// exactly once and, only when mutate succeeds, records the action with the
// before/after snapshots. Audit problems never change the returned values.
func Track[T any](
	ctx context.Context,
	i *Interceptor,
	op Operation,
	load func(context.Context) (T, error),
	mutate func(context.Context) (T, error),
) (T, error) {
	//変更前
	var before Values
	if i != nil && load != nil && op.Action.ReadsPriorState() {
		current, err := load(ctx)
		switch {
		case err == nil:
			before = i.snapshot(op, current)
		case errors.Is(err, repository.ErrNotFound):
			//存在しない場合は変更前なし。結果はmutateに任せる。
		default:
			i.log.Warn().Err(err).
				Str("table_affected", op.Table).
				Int64("record_id", op.RecordID).
				Msg("could not load state before mutation")
		}
	}

	out, err := mutate(ctx)
	if err != nil || i == nil {
		return out, err
	}

	//変更後
	var after Values
	if op.Action.WritesNewState() {
		after = i.snapshot(op, out)
	}

	recordID := op.RecordID
	if recordID <= 0 {
		if id, ok := PrimaryKey(out); ok {
			recordID = id
		}
	}

	i.logger.RecordFromContext(ctx, Entry{
		Action:    op.Action,
		Table:     op.Table,
		RecordID:  recordID,
		OldValues: before,
		NewValues: after,
	})
	return out, nil
}

func (i *Interceptor) snapshot(op Operation, entity any) Values {
	values, dropped, err := Snapshot(entity)
	if err != nil {
		i.log.Warn().Err(err).
			Str("table_affected", op.Table).
			Int64("record_id", op.RecordID).
			Msg("could not snapshot entity")
		return nil
	}
	if len(dropped) > 0 {
		i.log.Warn().
			Strs("dropped", dropped).
			Str("table_affected", op.Table).
			Int64("record_id", op.RecordID).
			Msg("dropped non-serializable fields from snapshot")
	}
	return values
}
