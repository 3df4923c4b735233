package public

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
)

func validSubmitBody() string {
	return `{
		"email_primary": "a@x.com",
		"circle": "Mumbai",
		"state": "Maharashtra",
		"district": "Thane",
		"name": "a b",
		"contact_number": "9820012345",
		"pin_code": "400601",
		"designation": "Rigger",
		"activity": "Tower Maintenance",
		"work_at_height_certificate": "yes",
		"ppes": "yes"
	}`
}

func TestSubmitHandlerSuccess(t *testing.T) {
	commands := &fakeCommandService{result: storedSubmission()}
	router := newTestRouter(commands, &fakeQueryService{})

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(validSubmitBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status     string `json:"status"`
		ID         string `json:"id"`
		Submission struct {
			Reference     string `json:"reference"`
			EmailPrimary  string `json:"email_primary"`
			Name          string `json:"name"`
			ContactNumber string `json:"contact_number"`
		} `json:"submission"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.ID != "3e7c9a30-0000-4000-8000-000000000001" {
		t.Errorf("id = %q, want the public reference", resp.ID)
	}
	if resp.Submission.ContactNumber != "******2345" {
		t.Errorf("contact_number = %q, want masked", resp.Submission.ContactNumber)
	}
	if strings.Contains(rec.Body.String(), "665a1b2c3d4e5f6a7b8c9d0e") {
		t.Error("response must not expose the internal identifier")
	}
}

func TestSubmitHandlerRejectsNonObjectBody(t *testing.T) {
	commands := &fakeCommandService{result: storedSubmission()}
	router := newTestRouter(commands, &fakeQueryService{})

	for _, body := range []string{`[1,2,3]`, `"text"`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
	if commands.lastCmd.EmailPrimary != "" {
		t.Error("command service should not be reached for invalid payloads")
	}
}

func TestSubmitHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "duplicate email", err: publicapp.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "store unavailable", err: publicapp.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeCommandService{err: tc.err}, &fakeQueryService{})

			req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(validSubmitBody()))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if strings.Contains(rec.Body.String(), "mongodb://") {
				t.Error("error body must not leak connection details")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	valid := func() createSubmissionRequest {
		return createSubmissionRequest{
			EmailPrimary:            "a@x.com",
			Circle:                  "Mumbai",
			State:                   "Maharashtra",
			District:                "Thane",
			Name:                    "a b",
			ContactNumber:           "9820012345",
			PinCode:                 "400601",
			Designation:             "Rigger",
			Activity:                "Tower Maintenance",
			WorkAtHeightCertificate: "yes",
			PPEs:                    "yes",
		}
	}

	cases := []struct {
		name    string
		mutate  func(*createSubmissionRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*createSubmissionRequest) {}},
		{name: "missing email", mutate: func(r *createSubmissionRequest) { r.EmailPrimary = "" }, wantErr: true},
		{name: "malformed email", mutate: func(r *createSubmissionRequest) { r.EmailPrimary = "not-an-email" }, wantErr: true},
		{name: "email too long", mutate: func(r *createSubmissionRequest) {
			r.EmailPrimary = strings.Repeat("a", 250) + "@x.com"
		}, wantErr: true},
		{name: "blank circle", mutate: func(r *createSubmissionRequest) { r.Circle = "   " }, wantErr: true},
		{name: "blank state", mutate: func(r *createSubmissionRequest) { r.State = "" }, wantErr: true},
		{name: "blank district", mutate: func(r *createSubmissionRequest) { r.District = "" }, wantErr: true},
		{name: "single-char name", mutate: func(r *createSubmissionRequest) { r.Name = "a" }, wantErr: true},
		{name: "contact number too short", mutate: func(r *createSubmissionRequest) { r.ContactNumber = "123456" }, wantErr: true},
		{name: "contact number too long", mutate: func(r *createSubmissionRequest) {
			r.ContactNumber = strings.Repeat("9", 21)
		}, wantErr: true},
		{name: "pin too short", mutate: func(r *createSubmissionRequest) { r.PinCode = "12" }, wantErr: true},
		{name: "pin too long", mutate: func(r *createSubmissionRequest) { r.PinCode = strings.Repeat("1", 13) }, wantErr: true},
		{name: "blank designation", mutate: func(r *createSubmissionRequest) { r.Designation = "" }, wantErr: true},
		{name: "blank activity", mutate: func(r *createSubmissionRequest) { r.Activity = "" }, wantErr: true},
		{name: "blank certificate", mutate: func(r *createSubmissionRequest) { r.WorkAtHeightCertificate = "" }, wantErr: true},
		{name: "blank ppes", mutate: func(r *createSubmissionRequest) { r.PPEs = "" }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			err := req.normalize()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNormalizeTrims(t *testing.T) {
	req := createSubmissionRequest{
		EmailPrimary:            " a@x.com ",
		Circle:                  " Mumbai ",
		State:                   " Maharashtra ",
		District:                " Thane ",
		Name:                    " a b ",
		ContactNumber:           " 9820012345 ",
		PinCode:                 " 400601 ",
		Designation:             " Rigger ",
		Activity:                " Tower Maintenance ",
		WorkAtHeightCertificate: " yes ",
		PPEs:                    " yes ",
	}

	if err := req.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if req.EmailPrimary != "a@x.com" {
		t.Errorf("EmailPrimary = %q, want trimmed", req.EmailPrimary)
	}
	if req.Circle != "Mumbai" || req.ContactNumber != "9820012345" {
		t.Error("fields should be trimmed")
	}
}
