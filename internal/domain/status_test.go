package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "completed", "cancelled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	for _, s := range []string{"", "Pending", "refunded", "done"} {
		assert.False(t, ValidOrderStatus(s), s)
	}
}

func TestValidMessageStatus(t *testing.T) {
	for _, s := range []string{"new", "read", "replied"} {
		assert.True(t, ValidMessageStatus(s), s)
	}
	for _, s := range []string{"", "New", "archived"} {
		assert.False(t, ValidMessageStatus(s), s)
	}
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
