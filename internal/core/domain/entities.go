package domain

// ViolationStatus is the lifecycle state of a violation record
type ViolationStatus string

const (
	StatusPending   ViolationStatus = "pending"
	StatusPaid      ViolationStatus = "paid"
	StatusAppealed  ViolationStatus = "appealed"
	StatusDismissed ViolationStatus = "dismissed"
	StatusCompleted ViolationStatus = "completed"
)

// ViolationStatuses lists every valid status
var ViolationStatuses = []ViolationStatus{
	StatusPending,
	StatusPaid,
	StatusAppealed,
	StatusDismissed,
	StatusCompleted,
}

// Valid reports whether s is one of the enumerated statuses
func (s ViolationStatus) Valid() bool {
	for _, v := range ViolationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tourist is the subject of a violation
type Tourist struct {
	Name     string `json:"name" validate:"required"`
	Passport string `json:"passport" validate:"required"`
	Country  string `json:"country" validate:"required"`
	ID       string `json:"id" validate:"required"`
}

// ViolationDetails describes the incident; all values are free-form
type ViolationDetails struct {
	Type     string `json:"type" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Location string `json:"location" validate:"required"`
	Fine     string `json:"fine" validate:"required"`
}

// OfficerRef is a snapshot of the filing officer
type OfficerRef struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Payment is recorded only when a violation moves to paid
type Payment struct {
	Amount  string `json:"amount"`
	Date    string `json:"date"`
	Method  string `json:"method"`
	Receipt string `json:"receipt"`
}

// TokenIdentity is the identity decoded from a verified bearer token
type TokenIdentity struct {
	ID         uint   `json:"id"`
	OfficerSVC string `json:"officerSVC"`
}
