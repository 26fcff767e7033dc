package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

func TestUser_FullAndSummary(t *testing.T) {
	req := &ports.Request{BaseURL: "http://cms.local/"}
	u := &domain.User{ID: "jane", Login: "jane@example.com", FullName: "Jane Doe", Email: "jane@example.com", Roles: []string{"Member"}, PasswordHash: "secret"}

	full, err := User(u, req)
	require.NoError(t, err)
	assert.Equal(t, "http://cms.local/@users/jane", full["@id"])
	assert.Equal(t, "jane@example.com", full["username"])
	assert.Equal(t, []any{"Member"}, full["roles"])
	assert.Equal(t, []any{}, full["groups"])
	assert.NotContains(t, full, "password_hash")

	summary, err := UserSummary(u, req)
	require.NoError(t, err)
	assert.Equal(t, full["@id"], summary["@id"])
	assert.NotContains(t, summary, "roles")
	assert.Equal(t, "Jane Doe", summary["fullname"])
}

func TestUsers_KeepsMissingRecordsAsNil(t *testing.T) {
	req := &ports.Request{BaseURL: "http://cms.local"}

	out, err := Users([]*domain.User{nil, {ID: "bob"}}, req)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Nil(t, out[0])
	assert.Equal(t, "bob", out[1].(map[string]any)["id"])
}
