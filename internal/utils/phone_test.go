package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	got := NormalizePhone("(11) 98765-4321", "BR")
	assert.True(t, strings.HasPrefix(got, "+55 11"), got)
	assert.Contains(t, got, "98765")

	got = NormalizePhone("+1 650 253 0000", "BR")
	assert.True(t, strings.HasPrefix(got, "+1 650"), got)

	assert.Equal(t, "ramal 12", NormalizePhone("  ramal 12 ", "BR"))
	assert.Equal(t, "", NormalizePhone("   ", "BR"))
}

func TestNewID_UniqueAndOrdered(t *testing.T) {
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 500; i++ {
		id := NewID()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
		assert.Greater(t, id, prev)
		prev = id
	}
}
