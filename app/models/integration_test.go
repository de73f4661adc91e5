package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationDaysUntilExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in4 := now.Add(4 * 24 * time.Hour)
	in5 := now.Add(5 * 24 * time.Hour)
	past := now.Add(-36 * time.Hour)

	assert.InDelta(t, 4.0, (&Integration{ExpiresAt: &in4}).DaysUntilExpiry(now), 1e-9)
	assert.InDelta(t, 5.0, (&Integration{ExpiresAt: &in5}).DaysUntilExpiry(now), 1e-9)
	assert.InDelta(t, -1.5, (&Integration{ExpiresAt: &past}).DaysUntilExpiry(now), 1e-9)
}

func TestIntegrationMissingExpiryCountsAsLapsed(t *testing.T) {
	now := time.Now()
	i := &Integration{}

	assert.Less(t, i.TimeUntilExpiry(now), time.Duration(0))
	assert.Less(t, i.DaysUntilExpiry(now), 0.0)
}

func TestIntegrationBeforeCreateAssignsID(t *testing.T) {
	i := &Integration{}
	require.NoError(t, i.BeforeCreate(nil))
	assert.Len(t, i.ID, 36)

	keep := &Integration{ID: "fixed-id"}
	require.NoError(t, keep.BeforeCreate(nil))
	assert.Equal(t, "fixed-id", keep.ID)
}

func TestExpiryFromLifetime(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(5184000*time.Second), ExpiryFromLifetime(now, 5184000))
	assert.Equal(t, now.Add(DefaultTokenLifetime), ExpiryFromLifetime(now, 0))
}
