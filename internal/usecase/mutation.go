package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/wendynovel0/prueba/internal/audit"
	repo "github.com/wendynovel0/prueba/internal/repository"
)

// 変更前の読み込みは1回だけ。読み込んだ値をコピーして変更・保存する。
// 監査ログはaudit.Trackが成功時だけ残す。
func trackChange[T any](
	ctx context.Context,
	interceptor *audit.Interceptor,
	op audit.Operation,
	notFound string,
	find func(context.Context) (T, error),
	apply func(ctx context.Context, next *T) error,
) (T, error) {
	var (
		current T
		loadErr error
		loaded  bool
	)

	load := func(ctx context.Context) (T, error) {
		current, loadErr = find(ctx)
		loaded = true
		return current, loadErr
	}

	mutate := func(ctx context.Context) (T, error) {
		var zero T
		if !loaded {
			_, _ = load(ctx)
		}
		if errors.Is(loadErr, repo.ErrNotFound) {
			return zero, NewHTTPError(http.StatusNotFound, notFound)
		}
		if loadErr != nil {
			return zero, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		next := current
		if err := apply(ctx, &next); err != nil {
			return zero, err
		}
		return next, nil
	}

	return audit.Track(ctx, interceptor, op, load, mutate)
}

// PostgreSQLのtimestampはマイクロ秒まで。保存される値とスナップショットを揃える。
func storedTime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}
