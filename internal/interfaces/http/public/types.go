package public

import (
	"time"

	publicdomain "github.com/sngm3741/telecom-hire-backend/api/internal/public/domain"
)

// submissionResponse は既存フロントエンドが読むフィールド名 (snake_case) を維持した
// サニタイズ済み応募の DTO。内部 ID は含まれない。
type submissionResponse struct {
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

type debugResponse struct {
	Count int                  `json:"count"`
	Docs  []submissionResponse `json:"docs"`
}

type createSubmissionResponse struct {
	Status     string             `json:"status"`
	ID         string             `json:"id"`
	Submission submissionResponse `json:"submission"`
}

// buildSubmissionResponse converts the sanitized view into the wire DTO.
func buildSubmissionResponse(s publicdomain.SanitizedSubmission) submissionResponse {
	return submissionResponse{
		Reference:               s.Reference,
		EmailPrimary:            s.EmailPrimary,
		Circle:                  s.Circle,
		State:                   s.State,
		District:                s.District,
		Name:                    s.Name,
		ContactNumber:           s.ContactNumber,
		PinCode:                 s.PinCode,
		Designation:             s.Designation,
		Activity:                s.Activity,
		WorkAtHeightCertificate: s.WorkAtHeightCertificate,
		PPEs:                    s.PPEs,
		SubmittedAt:             s.SubmittedAt,
	}
}
