package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@test.com", normalizeEmail("  Test@Test.COM "))
}

func TestLoginAttemptKey(t *testing.T) {
	assert.Equal(t, "login:fail:new@test.com", loginAttemptKey("New@Test.com"))
}
