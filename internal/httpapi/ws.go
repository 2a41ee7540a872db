package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StreamSession pushes a session's emitted events to a websocket observer.
// The socket is write-only: commands still arrive through the step endpoint,
// so the stream is purely an Event Sink surface.
func StreamSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		sess, err := d.Manager.Get(code)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := sess.Subscribe()
		defer sess.Unsubscribe(out)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-out:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					d.Log.Warn("ws marshal failed", zap.String("code", code), zap.Error(err))
					continue
				}
				writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
				err = conn.Write(writeCtx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
		}
	}
}
