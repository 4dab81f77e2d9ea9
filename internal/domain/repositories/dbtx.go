package repositories

import "context"

// txContextKey is the type for transaction context keys
type txContextKey struct{}

// WithTx stores a backend transaction handle in the context.
func WithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFrom retrieves the transaction stored by WithTx.
// ok is false when no transaction of type T is present.
func TxFrom[T any](ctx context.Context) (tx T, ok bool) {
	tx, ok = ctx.Value(txContextKey{}).(T)
	return tx, ok
}
