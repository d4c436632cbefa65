package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimTransitions(t *testing.T) {
	cases := []struct {
		from    ClaimStatus
		to      ClaimStatus
		allowed bool
	}{
		{ClaimStatusPending, ClaimStatusApproved, true},
		{ClaimStatusPending, ClaimStatusRejected, true},
		{ClaimStatusPending, ClaimStatusCompleted, false},
		{ClaimStatusApproved, ClaimStatusCompleted, true},
		{ClaimStatusApproved, ClaimStatusRejected, false},
		{ClaimStatusApproved, ClaimStatusPending, false},
		{ClaimStatusRejected, ClaimStatusApproved, false},
		{ClaimStatusRejected, ClaimStatusCompleted, false},
		{ClaimStatusCompleted, ClaimStatusPending, false},
		{ClaimStatusCompleted, ClaimStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransitionClaim(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
