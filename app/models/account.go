package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Account is the persisted record of an onboarded identity.
type Account struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	IdentityID   string        `gorm:"uniqueIndex;type:varchar(191)" json:"identity_id" validate:"required,max=191"`
	FirstName    string        `gorm:"type:varchar(100)" json:"firstname" validate:"max=100"`
	LastName     string        `gorm:"type:varchar(100)" json:"lastname" validate:"max=100"`
	Email        string        `gorm:"index;type:varchar(200)" json:"email" validate:"omitempty,email,max=200"`
	Integrations []Integration `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"integrations"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Account) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// NewAccount builds a validated account for a first-time identity.
func NewAccount(identityID, firstName, lastName, email string) (*Account, error) {
	a := &Account{
		IdentityID: strings.TrimSpace(identityID),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}
