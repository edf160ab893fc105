package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserRole(t *testing.T) {
	assert.Equal(t, UserRoleAdmin, ParseUserRole("ADMIN"))
	assert.Equal(t, UserRoleAdmin, ParseUserRole(" admin "))
	assert.Equal(t, UserRoleUser, ParseUserRole("user"))
	assert.Equal(t, UserRoleUser, ParseUserRole(""))
	assert.Equal(t, UserRoleUser, ParseUserRole("operator"))

	assert.True(t, UserRef{ID: 1, Role: UserRoleAdmin}.IsAdmin())
	assert.False(t, UserRef{ID: 1}.IsAdmin())
}
