package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/telecom-hire-backend/api/internal/public/domain"
)

// DebugSampleLimit caps the sanitized sample returned by the debug read.
const DebugSampleLimit = 10

var (
	// ErrStoreUnavailable signals a connectivity or timeout failure on the store.
	ErrStoreUnavailable = errors.New("submission store unavailable")
	// ErrDuplicateEmail signals a unique index violation on email_primary.
	ErrDuplicateEmail = errors.New("email_primary already exists")
)

// SubmissionRepository handles submission reads/writes.
// SubmissionRepository は Public コンテキストで応募を永続化するためのポート。
type SubmissionRepository interface {
	Insert(ctx context.Context, submission *domain.Submission) error
	Sample(ctx context.Context, limit int) ([]domain.Submission, error)
}

// SubmitSubmissionCommand captures validated caller input.
type SubmitSubmissionCommand struct {
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
}

// SubmissionCommandService handles writing use-cases.
type SubmissionCommandService interface {
	Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error)
}

// SubmissionQueryService describes the sanitized read use-case.
// SubmissionQueryService は /debug 用のサニタイズ済みサンプル取得ユースケース。
type SubmissionQueryService interface {
	Sample(ctx context.Context) ([]domain.SanitizedSubmission, error)
}

func NewSubmissionCommandService(repo SubmissionRepository) SubmissionCommandService {
	return &submissionCommandService{repo: repo}
}

type submissionCommandService struct {
	repo SubmissionRepository
}

// Submit はサーバー採番 (Reference/SubmittedAt) を行い、リポジトリへ書き込む。
// メールアドレスの正規化(小文字化)はユニークインデックスと整合させるためここで行う。
func (s *submissionCommandService) Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error) {
	submission := &domain.Submission{
		Reference:               uuid.NewString(),
		EmailPrimary:            strings.ToLower(strings.TrimSpace(cmd.EmailPrimary)),
		Circle:                  cmd.Circle,
		State:                   cmd.State,
		District:                cmd.District,
		Name:                    cmd.Name,
		ContactNumber:           cmd.ContactNumber,
		PinCode:                 cmd.PinCode,
		Designation:             cmd.Designation,
		Activity:                cmd.Activity,
		WorkAtHeightCertificate: cmd.WorkAtHeightCertificate,
		PPEs:                    cmd.PPEs,
		SubmittedAt:             time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func NewSubmissionQueryService(repo SubmissionRepository) SubmissionQueryService {
	return &submissionQueryService{repo: repo}
}

type submissionQueryService struct {
	repo SubmissionRepository
}

// Sample returns up to DebugSampleLimit sanitized records in store order.
func (s *submissionQueryService) Sample(ctx context.Context) ([]domain.SanitizedSubmission, error) {
	submissions, err := s.repo.Sample(ctx, DebugSampleLimit)
	if err != nil {
		return nil, err
	}

	sanitized := make([]domain.SanitizedSubmission, 0, len(submissions))
	for _, submission := range submissions {
		sanitized = append(sanitized, submission.Sanitized())
	}
	return sanitized, nil
}
