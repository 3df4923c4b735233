package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	admindomain "github.com/sngm3741/telecom-hire-backend/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/telecom-hire-backend/api/internal/public/domain"
)

// SubmissionDocument は MongoDB 上での応募スキーマを Go 構造体として表現したもの。
// フィールド名は移行前のコレクションと互換を保つため snake_case のまま。
type SubmissionDocument struct {
	ID                      primitive.ObjectID `bson:"_id"`
	Reference               string             `bson:"reference"`
	EmailPrimary            string             `bson:"email_primary"`
	Circle                  string             `bson:"circle"`
	State                   string             `bson:"state"`
	District                string             `bson:"district"`
	Name                    string             `bson:"name"`
	ContactNumber           string             `bson:"contact_number"`
	PinCode                 string             `bson:"pin_code"`
	Designation             string             `bson:"designation,omitempty"`
	Activity                string             `bson:"activity,omitempty"`
	WorkAtHeightCertificate string             `bson:"work_at_height_certificate,omitempty"`
	PPEs                    string             `bson:"ppes,omitempty"`
	SubmittedAt             time.Time          `bson:"submitted_at"`
}

// newSubmissionDocument は採番済みの ObjectID を付与して永続化用ドキュメントを作る。
func newSubmissionDocument(submission publicdomain.Submission) SubmissionDocument {
	return SubmissionDocument{
		ID:                      primitive.NewObjectID(),
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

// mapSubmissionDocument はドキュメントを Public コンテキストのドメインモデルへ復元する。
func mapSubmissionDocument(doc SubmissionDocument) publicdomain.Submission {
	return publicdomain.Submission{
		ID:                      doc.ID.Hex(),
		Reference:               doc.Reference,
		EmailPrimary:            doc.EmailPrimary,
		Circle:                  doc.Circle,
		State:                   doc.State,
		District:                doc.District,
		Name:                    doc.Name,
		ContactNumber:           doc.ContactNumber,
		PinCode:                 doc.PinCode,
		Designation:             doc.Designation,
		Activity:                doc.Activity,
		WorkAtHeightCertificate: doc.WorkAtHeightCertificate,
		PPEs:                    doc.PPEs,
		SubmittedAt:             doc.SubmittedAt,
	}
}

// mapAdminSubmissionDocument はドキュメントを Admin コンテキストのドメインモデルへ復元する。
func mapAdminSubmissionDocument(doc SubmissionDocument) admindomain.Submission {
	return admindomain.Submission{
		ID:                      doc.ID.Hex(),
		Reference:               doc.Reference,
		EmailPrimary:            doc.EmailPrimary,
		Circle:                  doc.Circle,
		State:                   doc.State,
		District:                doc.District,
		Name:                    doc.Name,
		ContactNumber:           doc.ContactNumber,
		PinCode:                 doc.PinCode,
		Designation:             doc.Designation,
		Activity:                doc.Activity,
		WorkAtHeightCertificate: doc.WorkAtHeightCertificate,
		PPEs:                    doc.PPEs,
		SubmittedAt:             doc.SubmittedAt,
	}
}
