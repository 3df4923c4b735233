package domain

import "time"

// Submission is the operator-facing full record, internal identifier included.
// Public 側と異なりサニタイズ前の値を保持する。管理 API 以外から参照しないこと。
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

// CircleCount pairs a telecom circle with its submission count.
type CircleCount struct {
	Circle string
	Count  int64
}

// Metrics aggregates listing counters for the admin dashboard.
type Metrics struct {
	Total   int64
	Circles []CircleCount
}
