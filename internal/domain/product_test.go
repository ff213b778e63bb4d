package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, IsValidStatus(s), "status %q should be valid", s)
	}

	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("published"))
	assert.False(t, IsValidStatus("Pending"))
}

func TestRejectionReasons_FixedSet(t *testing.T) {
	reasons := RejectionReasons()

	assert.Len(t, reasons, 8)
	for _, r := range reasons {
		assert.True(t, IsValidRejectionReason(r), "reason %q should be valid", r)
	}
}

func TestIsValidRejectionReason_RejectsFreeText(t *testing.T) {
	assert.False(t, IsValidRejectionReason(""))
	assert.False(t, IsValidRejectionReason("other"))
	assert.False(t, IsValidRejectionReason("Looks bad"))
	assert.False(t, IsValidRejectionReason("inappropriate content"))
}

func TestIsValidLeaderboardCategory(t *testing.T) {
	for _, c := range ValidLeaderboardCategories() {
		assert.True(t, IsValidLeaderboardCategory(c), "category %q should be valid", c)
	}

	assert.False(t, IsValidLeaderboardCategory(""))
	assert.False(t, IsValidLeaderboardCategory("topsellers"))
	assert.False(t, IsValidLeaderboardCategory("revenue"))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range ValidOrderStatuses() {
		assert.True(t, IsValidOrderStatus(s), "status %q should be valid", s)
	}

	assert.False(t, IsValidOrderStatus("shipped"))
}
