package domain

import (
	"strings"
	"time"
)

// Submission represents one accepted field-worker hiring submission.
// ID は Mongo の ObjectID hex で内部専用。外部には Reference (UUID) のみを見せる。
type Submission struct {
	ID                      string
	Reference               string
	EmailPrimary            string
	Circle                  string
	State                   string
	District                string
	Name                    string
	ContactNumber           string
	PinCode                 string
	Designation             string
	Activity                string
	WorkAtHeightCertificate string
	PPEs                    string
	SubmittedAt             time.Time
}

// SanitizedSubmission is the externally visible view of a submission.
// The internal identifier is absent and the contact number is masked.
type SanitizedSubmission struct {
	Reference               string
	EmailPrimary            string
	Circle                  string
	State                   string
	District                string
	Name                    string
	ContactNumber           string
	PinCode                 string
	Designation             string
	Activity                string
	WorkAtHeightCertificate string
	PPEs                    string
	SubmittedAt             time.Time
}

// Sanitized strips internal fields and masks the contact number.
// 外部へ返す直前の境界関数。ここを通らない Submission を公開 API に流さないこと。
func (s Submission) Sanitized() SanitizedSubmission {
	return SanitizedSubmission{
		Reference:               s.Reference,
		EmailPrimary:            s.EmailPrimary,
		Circle:                  s.Circle,
		State:                   s.State,
		District:                s.District,
		Name:                    s.Name,
		ContactNumber:           MaskContactNumber(s.ContactNumber),
		PinCode:                 s.PinCode,
		Designation:             s.Designation,
		Activity:                s.Activity,
		WorkAtHeightCertificate: s.WorkAtHeightCertificate,
		PPEs:                    s.PPEs,
		SubmittedAt:             s.SubmittedAt,
	}
}

// MaskContactNumber hides all but the last four characters of a number.
func MaskContactNumber(value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
