package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Ann", "1 Rd", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "1 Rd", user.Address)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Zero(t, user.ID, "ID is assigned by the store")
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name       string
		user       User
		wantFields []string
	}{
		{
			name: "valid",
			user: User{Name: "Ann", Address: "1 Rd", Email: "a@x.com"},
		},
		{
			name: "empty strings are accepted",
			user: User{},
		},
		{
			name:       "name too long",
			user:       User{Name: strings.Repeat("n", MaxUserNameLength+1), Address: "a", Email: "e"},
			wantFields: []string{"name"},
		},
		{
			name: "every field too long",
			user: User{
				Name:    strings.Repeat("n", MaxUserNameLength+1),
				Address: strings.Repeat("a", MaxUserAddressLength+1),
				Email:   strings.Repeat("e", MaxUserEmailLength+1),
			},
			wantFields: []string{"address", "email", "name"},
		},
		{
			name: "limit counts characters not bytes",
			user: User{Name: strings.Repeat("é", MaxUserNameLength), Address: "a", Email: "e"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if len(tc.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			for _, field := range tc.wantFields {
				assert.Contains(t, verr.Fields, field)
			}
			assert.Len(t, verr.Fields, len(tc.wantFields))
		})
	}
}

func TestUserPatchApply(t *testing.T) {
	name := "X"
	user := User{ID: 7, Name: "Ann", Address: "1 Rd", Email: "a@x.com"}

	patch := UserPatch{Name: &name}
	assert.False(t, patch.IsEmpty())
	patch.Apply(&user)

	assert.Equal(t, User{ID: 7, Name: "X", Address: "1 Rd", Email: "a@x.com"}, user)
	assert.True(t, UserPatch{}.IsEmpty())
}
