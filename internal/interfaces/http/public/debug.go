package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/common"
	"github.com/sngm3741/telecom-hire-backend/api/internal/metrics"
	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
)

// debugHandler はサニタイズ済みサンプル (上限 10 件) を返す点検用エンドポイント。
// ストア障害は握りつぶさず 503 として呼び出し元に見せる。
func (h *Handler) debugHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		sanitized, err := h.queries.Sample(ctx)
		if err != nil {
			if errors.Is(err, publicapp.ErrStoreUnavailable) {
				metrics.StoreErrors.WithLabelValues("sample").Inc()
				h.logger.Error().Err(err).Msg("debug sample fetch failed: store unavailable")
				common.WriteError(h.logger, w, http.StatusServiceUnavailable, "submission store is unavailable")
				return
			}
			h.logger.Error().Err(err).Msg("debug sample fetch failed")
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to fetch submissions")
			return
		}

		metrics.DebugReads.Inc()

		docs := make([]submissionResponse, 0, len(sanitized))
		for _, s := range sanitized {
			docs = append(docs, buildSubmissionResponse(s))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, debugResponse{Count: len(docs), Docs: docs})
	}
}
