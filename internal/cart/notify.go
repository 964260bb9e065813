package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient user-facing message about one operation.
type Notification struct {
	Kind      Outcome `json:"kind"`
	Level     Level   `json:"level"`
	Message   string  `json:"message"`
	ProductID int     `json:"product_id"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Messages holds the localized text shown for each notified outcome.
type Messages struct {
	Added        string
	Removed      string
	OutOfStock   string
	AddFailed    string
	RemoveFailed string
	UpdateFailed string
	// UpdateNotInCart is shown when an update targets an entry the cart does not hold.
	// Empty falls back to UpdateFailed.
	UpdateNotInCart string
}

var EnglishMessages = Messages{
	Added:        "Product added to cart",
	Removed:      "Product removed from cart",
	OutOfStock:   "Requested amount is out of stock",
	AddFailed:    "Could not add the product",
	RemoveFailed: "Could not remove the product",
	UpdateFailed: "Could not update the product amount",

	UpdateNotInCart: "Could not update the product",
}

var PortugueseMessages = Messages{
	Added:        "Produto adicionado com sucesso",
	Removed:      "Produto removido com sucesso",
	OutOfStock:   "Quantidade solicitada fora de estoque",
	AddFailed:    "Erro na adição do produto",
	RemoveFailed: "Erro na remoção do produto",
	UpdateFailed: "Erro na alteração de quantidade do produto",

	UpdateNotInCart: "Erro na atualização do produto",
}

// MessagesFor picks a message table by locale tag, defaulting to English.
func MessagesFor(locale string) Messages {
	switch locale {
	case "pt", "pt-BR", "pt_BR":
		return PortugueseMessages
	default:
		return EnglishMessages
	}
}

// notification builds the message for o. Silent outcomes (noop, updated) report false.
func (m Messages) notification(o Outcome, productID int, cause error) (Notification, bool) {
	n := Notification{Kind: o, Level: LevelError, ProductID: productID}

	switch o {
	case OutcomeAdded:
		n.Level, n.Message = LevelSuccess, m.Added
	case OutcomeRemoved:
		n.Level, n.Message = LevelSuccess, m.Removed
	case OutcomeOutOfStock:
		n.Message = m.OutOfStock
	case OutcomeAddFailed:
		n.Message = m.AddFailed
	case OutcomeRemoveFailed:
		n.Message = m.RemoveFailed
	case OutcomeUpdateFailed:
		n.Message = m.UpdateFailed
		if errors.Is(cause, ErrProductNotInCart) && m.UpdateNotInCart != "" {
			n.Message = m.UpdateNotInCart
		}
	default:
		return Notification{}, false
	}
	return n, true
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	Log *zap.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notification) {
	if l.Log == nil {
		return
	}

	fields := []zap.Field{
		zap.Stringer("kind", n.Kind),
		zap.Int("product_id", n.ProductID),
		zap.String("message", n.Message),
	}
	if n.Level == LevelError {
		l.Log.Warn("cart notification", fields...)
		return
	}
	l.Log.Info("cart notification", fields...)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.all))
	copy(out, r.all)
	return out
}

// Notifiers fans a notification out to each member.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notification) {
	for _, x := range ns {
		if x != nil {
			x.Notify(ctx, n)
		}
	}
}

type ctxKey struct{}

// WithNotifier attaches a per-call notifier; the store notifies it in addition to its own.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

func notifierFromContext(ctx context.Context) Notifier {
	n, _ := ctx.Value(ctxKey{}).(Notifier)
	return n
}
