package reqctx

import "context"

type key int

const ridKey key = iota

// WithRID tags ctx with a request id for log correlation on external calls.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey, rid)
}

func RID(ctx context.Context) string {
	rid, _ := ctx.Value(ridKey).(string)
	return rid
}
