package admin

import (
	"time"

	admindomain "github.com/sngm3741/telecom-hire-backend/api/internal/admin/domain"
)

// adminSubmissionResponse は管理画面向けのフル DTO。内部 ID を含む唯一の外部表現。
type adminSubmissionResponse struct {
	ID                      string    `json:"id"`
	Reference               string    `json:"reference"`
	EmailPrimary            string    `json:"email_primary"`
	Circle                  string    `json:"circle"`
	State                   string    `json:"state"`
	District                string    `json:"district"`
	Name                    string    `json:"name"`
	ContactNumber           string    `json:"contact_number"`
	PinCode                 string    `json:"pin_code"`
	Designation             string    `json:"designation,omitempty"`
	Activity                string    `json:"activity,omitempty"`
	WorkAtHeightCertificate string    `json:"work_at_height_certificate,omitempty"`
	PPEs                    string    `json:"ppes,omitempty"`
	SubmittedAt             time.Time `json:"submitted_at"`
}

type adminSubmissionListResponse struct {
	Items []adminSubmissionResponse `json:"items"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
	Total int64                     `json:"total"`
}

type circleCountResponse struct {
	Circle string `json:"circle"`
	Count  int64  `json:"count"`
}

type adminMetricsResponse struct {
	Total   int64                 `json:"total"`
	Circles []circleCountResponse `json:"circles"`
}

// adminSubmissionDomainToResponse はドメインの Submission を Admin UI 用レスポンスへ変換する。
func adminSubmissionDomainToResponse(submission admindomain.Submission) adminSubmissionResponse {
	return adminSubmissionResponse{
		ID:                      submission.ID,
		Reference:               submission.Reference,
		EmailPrimary:            submission.EmailPrimary,
		Circle:                  submission.Circle,
		State:                   submission.State,
		District:                submission.District,
		Name:                    submission.Name,
		ContactNumber:           submission.ContactNumber,
		PinCode:                 submission.PinCode,
		Designation:             submission.Designation,
		Activity:                submission.Activity,
		WorkAtHeightCertificate: submission.WorkAtHeightCertificate,
		PPEs:                    submission.PPEs,
		SubmittedAt:             submission.SubmittedAt,
	}
}
