package models

import (
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Officer accounts
// ============================================================

// Officer represents officers table
type Officer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FullName       string    `gorm:"size:150;not null" json:"fullName"`
	OfficerSVC     string    `gorm:"uniqueIndex;size:50;not null" json:"officerSVC"`
	OfficerRank    string    `gorm:"size:100;not null" json:"officerRank"`
	PoliceStation  string    `gorm:"size:150;not null" json:"policeStation"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	Email          *string   `gorm:"uniqueIndex;size:150" json:"email,omitempty"`
	Phone          *string   `gorm:"size:30" json:"phone,omitempty"`
	ProfilePicture *string   `gorm:"size:500" json:"profilePicture,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Officer) TableName() string {
	return "officers"
}

// OfficerSummary is returned by auth and profile-update operations
type OfficerSummary struct {
	OfficerSVC    string `json:"officerSVC"`
	FullName      string `json:"fullName"`
	PoliceStation string `json:"policeStation"`
}

// OfficerProfile DTO
type OfficerProfile struct {
	OfficerSVC     string    `json:"officerSVC"`
	FullName       string    `json:"fullName"`
	OfficerRank    string    `json:"officerRank"`
	PoliceStation  string    `json:"policeStation"`
	ContactNumber  string    `json:"contactNumber"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (o *Officer) ToSummary() *OfficerSummary {
	return &OfficerSummary{
		OfficerSVC:    o.OfficerSVC,
		FullName:      o.FullName,
		PoliceStation: o.PoliceStation,
	}
}

func (o *Officer) ToProfile() *OfficerProfile {
	return &OfficerProfile{
		OfficerSVC:     o.OfficerSVC,
		FullName:       o.FullName,
		OfficerRank:    o.OfficerRank,
		PoliceStation:  o.PoliceStation,
		ContactNumber:  deref(o.Phone),
		Email:          deref(o.Email),
		ProfilePicture: deref(o.ProfilePicture),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ============================================================
// Registration roster
// ============================================================

// RosterEntry represents roster_entries table.
// A service number must have an active entry before an officer can register.
type RosterEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OfficerSVC    string    `gorm:"uniqueIndex;size:50;not null" json:"officerSVC"`
	OfficerRank   string    `gorm:"size:100" json:"officerRank,omitempty"`
	PoliceStation string    `gorm:"size:150" json:"policeStation,omitempty"`
	IsActive      bool      `gorm:"not null" json:"isActive"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (RosterEntry) TableName() string {
	return "roster_entries"
}

// ============================================================
// Violations
// ============================================================

// TouristInfo is stored inline with prefix tourist_
type TouristInfo struct {
	Name       string `gorm:"size:150;not null" json:"name"`
	Passport   string `gorm:"size:50;not null;index" json:"passport"`
	Country    string `gorm:"size:100;not null" json:"country"`
	Identifier string `gorm:"size:100;not null;index" json:"id"`
}

// ViolationInfo is stored inline with prefix violation_
type ViolationInfo struct {
	Type     string `gorm:"size:150;not null" json:"type"`
	Date     string `gorm:"size:50;not null" json:"date"`
	Time     string `gorm:"size:50;not null" json:"time"`
	Location string `gorm:"size:255;not null" json:"location"`
	Fine     string `gorm:"size:50;not null" json:"fine"`
}

// OfficerInfo is stored inline with prefix officer_
type OfficerInfo struct {
	Identifier string `gorm:"size:100;not null;index" json:"id"`
	Name       string `gorm:"size:150;not null" json:"name"`
}

// PaymentInfo is stored inline with prefix payment_; all columns are NULL until paid
type PaymentInfo struct {
	Amount  *string `gorm:"size:50"`
	Date    *string `gorm:"size:50"`
	Method  *string `gorm:"size:50"`
	Receipt *string `gorm:"size:150"`
}

// Violation represents violations table
type Violation struct {
	ID              string        `gorm:"primaryKey;size:36"`
	Tourist         TouristInfo   `gorm:"embedded;embeddedPrefix:tourist_"`
	Details         ViolationInfo `gorm:"embedded;embeddedPrefix:violation_"`
	Officer         OfficerInfo   `gorm:"embedded;embeddedPrefix:officer_"`
	ReferenceNumber string        `gorm:"uniqueIndex;size:20;not null"`
	Status          string        `gorm:"size:20;not null;default:'pending';index"`
	Payment         PaymentInfo   `gorm:"embedded;embeddedPrefix:payment_"`
	Timestamp       string        `gorm:"size:50;not null"`
	CreatedAt       time.Time     `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime"`
}

func (Violation) TableName() string {
	return "violations"
}

// ViolationResponse DTO
type ViolationResponse struct {
	ID              string          `json:"_id"`
	Tourist         TouristInfo     `json:"tourist"`
	Violation       ViolationInfo   `json:"violation"`
	Officer         OfficerInfo     `json:"officer"`
	ReferenceNumber string          `json:"referenceNumber"`
	Status          string          `json:"status"`
	Payment         *domain.Payment `json:"payment,omitempty"`
	Timestamp       string          `json:"timestamp"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (v *Violation) ToResponse() *ViolationResponse {
	return &ViolationResponse{
		ID:              v.ID,
		Tourist:         v.Tourist,
		Violation:       v.Details,
		Officer:         v.Officer,
		ReferenceNumber: v.ReferenceNumber,
		Status:          v.Status,
		Payment:         v.Payment.ToDomain(),
		Timestamp:       v.Timestamp,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// ToDomain returns nil when no payment has been recorded
func (p PaymentInfo) ToDomain() *domain.Payment {
	if p.Amount == nil && p.Date == nil && p.Method == nil && p.Receipt == nil {
		return nil
	}
	return &domain.Payment{
		Amount:  deref(p.Amount),
		Date:    deref(p.Date),
		Method:  deref(p.Method),
		Receipt: deref(p.Receipt),
	}
}

// ToViolationResponses converts a slice in order
func ToViolationResponses(violations []*Violation) []*ViolationResponse {
	out := make([]*ViolationResponse, len(violations))
	for i, v := range violations {
		out[i] = v.ToResponse()
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Officer{},
		&RosterEntry{},
		&Violation{},
	)
}
