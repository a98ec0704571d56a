package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredit(t *testing.T) {
	assert.Equal(t, 20, Credit(0, 20))
	assert.Equal(t, 35, Credit(25, 10))
	assert.Equal(t, 25, Credit(25, 0))
}

func TestCreditIgnoresNegativeAmount(t *testing.T) {
	assert.Equal(t, 25, Credit(25, -10))
}

func TestPenalizeClampsAtZero(t *testing.T) {
	assert.Equal(t, 0, Penalize(30, 50))
	assert.Equal(t, 0, Penalize(0, 50))
	assert.Equal(t, 0, Penalize(50, 50))
}

func TestPenalizeSubtracts(t *testing.T) {
	assert.Equal(t, 30, Penalize(80, 50))
	assert.Equal(t, 80, Penalize(80, 0))
	assert.Equal(t, 80, Penalize(80, -5))
}
