package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor кладёт активную транзакцию в контекст.
// Репозитории достают её через GetExecutor и тем самым участвуют в транзакции
// без изменения сигнатур.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// GetExecutor returns the transaction bound to ctx, or fallback when none is.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(ctxKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction reports whether ctx carries an active transaction.
// Используется репозиториями, чтобы добавить FOR UPDATE только внутри транзакции.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(TxExecutor)
	return ok
}
