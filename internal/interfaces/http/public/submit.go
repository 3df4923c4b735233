package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/sngm3741/telecom-hire-backend/api/internal/interfaces/http/common"
	"github.com/sngm3741/telecom-hire-backend/api/internal/metrics"
	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
)

type createSubmissionRequest struct {
	EmailPrimary            string `json:"email_primary"`
	Circle                  string `json:"circle"`
	State                   string `json:"state"`
	District                string `json:"district"`
	Name                    string `json:"name"`
	ContactNumber           string `json:"contact_number"`
	PinCode                 string `json:"pin_code"`
	Designation             string `json:"designation"`
	Activity                string `json:"activity"`
	WorkAtHeightCertificate string `json:"work_at_height_certificate"`
	PPEs                    string `json:"ppes"`
}

// normalize は応募入力の検証と補正を実施する。
// 上限・下限は移行前のバリデーション定義に合わせている。
func (req *createSubmissionRequest) normalize() error {
	email, err := normalizeEmail(req.EmailPrimary)
	if err != nil {
		return err
	}
	if email == "" {
		return errors.New("email_primary is required")
	}
	req.EmailPrimary = email

	req.Circle = strings.TrimSpace(req.Circle)
	if req.Circle == "" {
		return errors.New("circle is required")
	}
	req.State = strings.TrimSpace(req.State)
	if req.State == "" {
		return errors.New("state is required")
	}
	req.District = strings.TrimSpace(req.District)
	if req.District == "" {
		return errors.New("district is required")
	}

	req.Name = strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(req.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	if len(req.ContactNumber) < 7 || len(req.ContactNumber) > 20 {
		return errors.New("contact_number must be between 7 and 20 characters")
	}

	req.PinCode = strings.TrimSpace(req.PinCode)
	if len(req.PinCode) < 3 || len(req.PinCode) > 12 {
		return errors.New("pin_code must be between 3 and 12 characters")
	}

	req.Designation = strings.TrimSpace(req.Designation)
	if req.Designation == "" {
		return errors.New("designation is required")
	}
	req.Activity = strings.TrimSpace(req.Activity)
	if req.Activity == "" {
		return errors.New("activity is required")
	}
	req.WorkAtHeightCertificate = strings.TrimSpace(req.WorkAtHeightCertificate)
	if req.WorkAtHeightCertificate == "" {
		return errors.New("work_at_height_certificate is required")
	}
	req.PPEs = strings.TrimSpace(req.PPEs)
	if req.PPEs == "" {
		return errors.New("ppes is required")
	}

	return nil
}

// normalizeEmail はメールアドレスをトリムし、形式を検証する。
func normalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > common.MaxEmailLength {
		return "", errors.New("email_primary must be 254 characters or fewer")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", errors.New("email_primary is not a valid email address")
	}
	return trimmed, nil
}

// submitHandler は応募を 1 件受理して永続化する書き込みエンドポイント。
// マッピングとして解釈できないボディは InvalidPayload (400) として拒否する。
func (h *Handler) submitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, common.MaxSubmitRequestBody)

		var req createSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			metrics.SubmissionsRejected.WithLabelValues("invalid_payload").Inc()
			common.WriteError(h.logger, w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}

		if err := req.normalize(); err != nil {
			metrics.SubmissionsRejected.WithLabelValues("invalid_payload").Inc()
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		submission, err := h.commands.Submit(ctx, publicapp.SubmitSubmissionCommand{
			EmailPrimary:            req.EmailPrimary,
			Circle:                  req.Circle,
			State:                   req.State,
			District:                req.District,
			Name:                    req.Name,
			ContactNumber:           req.ContactNumber,
			PinCode:                 req.PinCode,
			Designation:             req.Designation,
			Activity:                req.Activity,
			WorkAtHeightCertificate: req.WorkAtHeightCertificate,
			PPEs:                    req.PPEs,
		})
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrDuplicateEmail):
				metrics.SubmissionsRejected.WithLabelValues("duplicate_email").Inc()
				common.WriteError(h.logger, w, http.StatusConflict, "email_primary already exists")
			case errors.Is(err, publicapp.ErrStoreUnavailable):
				metrics.StoreErrors.WithLabelValues("insert").Inc()
				h.logger.Error().Err(err).Msg("submission insert failed: store unavailable")
				common.WriteError(h.logger, w, http.StatusServiceUnavailable, "submission store is unavailable")
			default:
				h.logger.Error().Err(err).Msg("submission insert failed")
				common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to store submission")
			}
			return
		}

		metrics.SubmissionsAccepted.Inc()

		common.WriteJSON(h.logger, w, http.StatusCreated, createSubmissionResponse{
			Status:     "ok",
			ID:         submission.Reference,
			Submission: buildSubmissionResponse(submission.Sanitized()),
		})
	}
}
