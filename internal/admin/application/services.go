package application

import (
	"context"
	"errors"

	admindomain "github.com/sngm3741/telecom-hire-backend/api/internal/admin/domain"
)

var (
	// ErrNotFound signals that no submission matches the given identifier.
	ErrNotFound = errors.New("submission not found")
	// ErrStoreUnavailable signals a connectivity or timeout failure on the store.
	ErrStoreUnavailable = errors.New("submission store unavailable")
)

// SubmissionFilter expresses admin search criteria.
type SubmissionFilter struct {
	Circle  string
	State   string
	Keyword string
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// SubmissionRepository exposes admin read operations on submissions.
type SubmissionRepository interface {
	Find(ctx context.Context, filter SubmissionFilter, paging Paging) ([]admindomain.Submission, error)
	Count(ctx context.Context, filter SubmissionFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*admindomain.Submission, error)
	Metrics(ctx context.Context) (*admindomain.Metrics, error)
}

// SubmissionService describes admin submission use-cases.
// SubmissionService は管理画面向けの参照ユースケースを提供するリーダーモデル。
type SubmissionService interface {
	List(ctx context.Context, filter SubmissionFilter, paging Paging) ([]admindomain.Submission, int64, error)
	Detail(ctx context.Context, id string) (*admindomain.Submission, error)
	Metrics(ctx context.Context) (*admindomain.Metrics, error)
}

func NewSubmissionService(repo SubmissionRepository) SubmissionService {
	return &submissionService{repo: repo}
}

type submissionService struct {
	repo SubmissionRepository
}

func (s *submissionService) List(ctx context.Context, filter SubmissionFilter, paging Paging) ([]admindomain.Submission, int64, error) {
	if paging.Page < 1 {
		paging.Page = 1
	}
	if paging.Limit < 1 || paging.Limit > 100 {
		paging.Limit = 20
	}

	submissions, err := s.repo.Find(ctx, filter, paging)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (s *submissionService) Detail(ctx context.Context, id string) (*admindomain.Submission, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *submissionService) Metrics(ctx context.Context) (*admindomain.Metrics, error) {
	return s.repo.Metrics(ctx)
}
