package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextBillNumber(t *testing.T) {
	existing := []string{"RENT-2025-001", "RENT-2025-002"}
	assert.Equal(t, "RENT-2025-003", NextBillNumber("RENT", 2025, existing))
}

func TestNextBillNumber_EmptyScope(t *testing.T) {
	assert.Equal(t, "RENT-2025-001", NextBillNumber("RENT", 2025, nil))
}

func TestNextBillNumber_IgnoresOtherScopes(t *testing.T) {
	existing := []string{
		"RENT-2024-017",
		"MAINT-2025-004",
		"RENT-2025-002",
	}
	assert.Equal(t, "RENT-2025-003", NextBillNumber("RENT", 2025, existing))
}

func TestNextBillNumber_IgnoresMalformedSuffix(t *testing.T) {
	existing := []string{"RENT-2025-abc", "RENT-2025-005"}
	assert.Equal(t, "RENT-2025-006", NextBillNumber("RENT", 2025, existing))
}

func TestNextBillNumber_GapsDoNotRefill(t *testing.T) {
	// Sequence continues past the max even when earlier numbers were freed
	existing := []string{"RENT-2025-001", "RENT-2025-009"}
	assert.Equal(t, "RENT-2025-010", NextBillNumber("RENT", 2025, existing))
}

func TestNextBillNumber_BeyondPadding(t *testing.T) {
	existing := []string{"RENT-2025-999"}
	assert.Equal(t, "RENT-2025-1000", NextBillNumber("RENT", 2025, existing))
}

func TestNumberMinter_NoReuseWithinRun(t *testing.T) {
	minter := NewNumberMinter()
	persisted := []string{"RENT-2025-001"}

	first := minter.Mint("RENT", 2025, persisted)
	second := minter.Mint("RENT", 2025, persisted)
	third := minter.Mint("RENT", 2025, persisted)

	assert.Equal(t, "RENT-2025-002", first)
	assert.Equal(t, "RENT-2025-003", second)
	assert.Equal(t, "RENT-2025-004", third)
	assert.Equal(t, 3, minter.Minted())
}

func TestNumberMinter_MixedPrefixes(t *testing.T) {
	minter := NewNumberMinter()

	assert.Equal(t, "RENT-2025-001", minter.Mint("RENT", 2025, nil))
	assert.Equal(t, "MAINT-2025-001", minter.Mint("MAINT", 2025, nil))
	assert.Equal(t, "RENT-2025-002", minter.Mint("RENT", 2025, nil))
}
