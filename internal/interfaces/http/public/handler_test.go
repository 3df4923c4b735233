package public

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
	publicdomain "github.com/sngm3741/telecom-hire-backend/api/internal/public/domain"
)

// fakeCommandService implements publicapp.SubmissionCommandService for tests.
type fakeCommandService struct {
	lastCmd publicapp.SubmitSubmissionCommand
	result  *publicdomain.Submission
	err     error
}

func (f *fakeCommandService) Submit(_ context.Context, cmd publicapp.SubmitSubmissionCommand) (*publicdomain.Submission, error) {
	f.lastCmd = cmd
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeQueryService implements publicapp.SubmissionQueryService for tests.
type fakeQueryService struct {
	sanitized []publicdomain.SanitizedSubmission
	err       error
}

func (f *fakeQueryService) Sample(context.Context) ([]publicdomain.SanitizedSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sanitized, nil
}

func newTestRouter(commands publicapp.SubmissionCommandService, queries publicapp.SubmissionQueryService) *chi.Mux {
	handler := NewHandler(Config{
		Logger:         zerolog.Nop(),
		Commands:       commands,
		Queries:        queries,
		RequestTimeout: time.Second,
	})
	router := chi.NewRouter()
	handler.Register(router)
	return router
}

func storedSubmission() *publicdomain.Submission {
	return &publicdomain.Submission{
		ID:                      "665a1b2c3d4e5f6a7b8c9d0e",
		Reference:               "3e7c9a30-0000-4000-8000-000000000001",
		EmailPrimary:            "a@x.com",
		Circle:                  "Mumbai",
		State:                   "Maharashtra",
		District:                "Thane",
		Name:                    "a",
		ContactNumber:           "9820012345",
		PinCode:                 "400601",
		Designation:             "Rigger",
		Activity:                "Tower Maintenance",
		WorkAtHeightCertificate: "yes",
		PPEs:                    "yes",
		SubmittedAt:             time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}
