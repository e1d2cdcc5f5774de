package utils

import (
	// Go Internal Packages
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
)

func TestFormatAssignments(t *testing.T) {
	got := FormatAssignments(map[string][]int32{
		"payment.transaction.failed":   {2, 0},
		"payment.transaction.received": {1},
	})
	assert.Equal(t, "payment.transaction.failed[0,2] payment.transaction.received[1]", got)
	assert.Equal(t, "", FormatAssignments(nil))
}
