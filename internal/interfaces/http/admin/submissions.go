package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/telecom-hire-backend/api/internal/admin/application"
	"github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/common"
)

// submissionListHandler は管理者向けの応募一覧 API。
// ページングと Circle/State/キーワードの絞り込みをサポートする。
func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		query := r.URL.Query()
		filter := adminapp.SubmissionFilter{
			Circle:  strings.TrimSpace(query.Get("circle")),
			State:   strings.TrimSpace(query.Get("state")),
			Keyword: strings.TrimSpace(query.Get("q")),
		}

		paging := adminapp.Paging{}
		paging.Page, _ = common.ParsePositiveInt(query.Get("page"), 1)
		paging.Limit, _ = common.ParsePositiveInt(query.Get("limit"), 20)

		submissions, total, err := h.submissions.List(ctx, filter, paging)
		if err != nil {
			h.writeServiceError(w, err, "応募一覧の取得に失敗")
			return
		}

		items := make([]adminSubmissionResponse, 0, len(submissions))
		for _, submission := range submissions {
			items = append(items, adminSubmissionDomainToResponse(submission))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminSubmissionListResponse{
			Items: items,
			Page:  paging.Page,
			Limit: paging.Limit,
			Total: total,
		})
	}
}

// submissionDetailHandler は ObjectID hex または Reference で単一応募を返す。
func (h *Handler) submissionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		submission, err := h.submissions.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, adminapp.ErrNotFound) {
				common.WriteError(h.logger, w, http.StatusNotFound, "submission not found")
				return
			}
			h.writeServiceError(w, err, "応募詳細の取得に失敗")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminSubmissionDomainToResponse(*submission))
	}
}

// submissionMetricsHandler は総数とサークル別件数を返すダッシュボード用 API。
func (h *Handler) submissionMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		metrics, err := h.submissions.Metrics(ctx)
		if err != nil {
			h.writeServiceError(w, err, "集計の取得に失敗")
			return
		}

		circles := make([]circleCountResponse, 0, len(metrics.Circles))
		for _, circle := range metrics.Circles {
			circles = append(circles, circleCountResponse{Circle: circle.Circle, Count: circle.Count})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminMetricsResponse{
			Total:   metrics.Total,
			Circles: circles,
		})
	}
}

// writeServiceError はストア障害を 503、それ以外を 500 として返す共通処理。
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, logMessage string) {
	if errors.Is(err, adminapp.ErrStoreUnavailable) {
		h.logger.Error().Err(err).Msg(logMessage)
		common.WriteError(h.logger, w, http.StatusServiceUnavailable, "submission store is unavailable")
		return
	}
	h.logger.Error().Err(err).Msg(logMessage)
	common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
}
