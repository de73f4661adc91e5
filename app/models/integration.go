package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	IntegrationInstagram = "INSTAGRAM"

	// DefaultTokenLifetime applies when the token endpoint omits expires_in.
	DefaultTokenLifetime = 60 * 24 * time.Hour
)

// Integration is a connected third-party credential owned by an account.
// Token holds the decrypted access token and is never persisted directly;
// the repository seals it into TokenEnc.
type Integration struct {
	ID          string     `gorm:"primaryKey;type:char(36)" json:"id"`
	AccountID   uint       `gorm:"index:account_integration,unique" json:"account_id"`
	Name        string     `gorm:"index:account_integration,unique;type:varchar(50);default:'INSTAGRAM'" json:"name"`
	Token       string     `gorm:"-" json:"-"`
	TokenEnc    string     `gorm:"column:token;type:text" json:"-"`
	ExpiresAt   *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	InstagramID string     `gorm:"type:varchar(100);default:null" json:"instagram_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (i *Integration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// TimeUntilExpiry returns the remaining token lifetime relative to now.
// A missing expiry counts as already lapsed.
func (i *Integration) TimeUntilExpiry(now time.Time) time.Duration {
	if i.ExpiresAt == nil || i.ExpiresAt.IsZero() {
		return time.Duration(math.MinInt64)
	}
	return i.ExpiresAt.Sub(now)
}

// DaysUntilExpiry is TimeUntilExpiry expressed in (fractional) days.
func (i *Integration) DaysUntilExpiry(now time.Time) float64 {
	return float64(i.TimeUntilExpiry(now)) / float64(24*time.Hour)
}

// ExpiryFromLifetime turns an expires_in value (seconds) into an absolute expiry.
func ExpiryFromLifetime(now time.Time, expiresInSeconds int64) time.Time {
	if expiresInSeconds <= 0 {
		return now.Add(DefaultTokenLifetime)
	}
	return now.Add(time.Duration(expiresInSeconds) * time.Second)
}
