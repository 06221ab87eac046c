package models

import "time"

type UserType string

const (
	UserTypeAdmin        UserType = "admin"
	UserTypeOwner        UserType = "owner"
	UserTypeNurse        UserType = "nurse"
	UserTypeNutritionist UserType = "nutritionist"
	UserTypeRelative     UserType = "relative"
)

// StaffAlertRoles are the roles notified on every emergency alert.
var StaffAlertRoles = []UserType{UserTypeNurse, UserTypeAdmin, UserTypeOwner}

func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeOwner, UserTypeNurse, UserTypeNutritionist, UserTypeRelative:
		return true
	}
	return false
}

type OTP struct {
	Code     string    `json:"-"`
	Expiry   time.Time `json:"-"`
	Verified bool      `json:"verified"`
}

type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	UserType     UserType   `json:"userType"`
	ResidentID   string     `json:"residentId,omitempty"` // relatives only
	IsArchived   bool       `json:"isArchived"`
	ArchivedDate *time.Time `json:"archivedDate,omitempty"`
	IsVerified   bool       `json:"isVerified"`
	OTP          OTP        `json:"otp"`
	CreatedAt    time.Time  `json:"createdAt"`
}
