package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptNumber(t *testing.T) {
	issueDate := time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)

	number, err := GenerateReceiptNumber(issueDate)
	require.NoError(t, err)
	assert.Regexp(t, `^20260415-\d{5}$`, number)

	// Suffixes are random, so a handful of draws should not all match
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		n, err := GenerateReceiptNumber(issueDate)
		require.NoError(t, err)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerateExternalPaymentID(t *testing.T) {
	now := time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)

	id := GenerateExternalPaymentID(now)
	assert.Equal(t, "SIM-1776249000000", id)
}
