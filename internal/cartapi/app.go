package cartapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

type Server struct {
	Carts *Registry
	// Tokens may be nil or disabled, in which case every caller shares one cart.
	Tokens *session.TokenMaker
	Log    *zap.Logger
}

type cartResp struct {
	Cart cart.Cart `json:"cart"`
}

type mutationResp struct {
	Cart          cart.Cart           `json:"cart"`
	Outcome       cart.Outcome        `json:"outcome"`
	Notifications []cart.Notification `json:"notifications"`
}

type updateReq struct {
	Amount *int `json:"amount"`
}

type sessionResp struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

func (s *Server) sessionsEnabled() bool {
	return s.Tokens.Enabled()
}

func (s *Server) store(r *http.Request) *cart.Store {
	return s.Carts.Store(r.Context(), session.IDFromContext(r.Context()))
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Carts.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) {
	tok, sid, err := s.Tokens.NewSession()
	if err != nil {
		if s.Log != nil {
			s.Log.Error("issue session token", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, sessionResp{Token: tok, SessionID: sid})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	st := s.store(r)
	if err := st.Hydrate(r.Context()); err != nil {
		if s.Log != nil {
			s.Log.Warn("load cart", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "cart unavailable", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cartResp{Cart: st.Cart()})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(ctx context.Context, st *cart.Store) cart.Outcome {
		return st.Add(ctx, id)
	})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, func(ctx context.Context, st *cart.Store) cart.Outcome {
		return st.Remove(ctx, id)
	})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.Amount == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "amount required", nil)
		return
	}

	amount := *req.Amount
	s.mutate(w, r, func(ctx context.Context, st *cart.Store) cart.Outcome {
		return st.UpdateAmount(ctx, id, amount)
	})
}

// mutate runs op with a per-request recorder so the response carries exactly the
// notifications this call produced.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, *cart.Store) cart.Outcome) {
	st := s.store(r)

	rec := &cart.Recorder{}
	out := op(cart.WithNotifier(r.Context(), rec), st)

	notes := rec.Notifications()
	if notes == nil {
		notes = []cart.Notification{}
	}
	kit.WriteJSON(w, http.StatusOK, mutationResp{
		Cart:          st.Cart(),
		Outcome:       out,
		Notifications: notes,
	})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}
