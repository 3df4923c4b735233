package public

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/common"
)

// healthHandler はプロセス生存のみを返す liveness チェック。
// ストア疎通は一切確認しない。Mongo 未設定でも必ず 200 を返す契約。
func (h *Handler) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// readyHandler は MongoDB への疎通確認を行い、監視系からの readiness 要求に応える。
// ドメインの状態ではなくインフラ状態のみを返す設計。
func (h *Handler) readyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if h.client == nil {
			common.WriteJSON(h.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"mongo":  "not-configured",
			})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
			h.logger.Warn().Err(err).Msg("readiness ping failed")
			common.WriteJSON(h.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"mongo":  "error",
			})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"mongo":  "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
