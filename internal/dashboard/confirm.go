package dashboard

import "context"

// Confirmer asks the operator whether an order should be marked delivered.
type Confirmer interface {
	Confirm(ctx context.Context, orderID string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(ctx context.Context, orderID string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, orderID string) bool {
	return f(ctx, orderID)
}

// Answer is a Confirmer with a fixed decision, e.g. one already taken by the caller.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool {
	return bool(a)
}
