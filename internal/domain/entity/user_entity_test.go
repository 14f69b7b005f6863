package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Ana", LastName: "Lee"}
	require.Equal(t, "Ana Lee", u.FullName())

	u = &User{FirstName: " Ana", LastName: "Lee "}
	require.Equal(t, " Ana Lee ", u.FullName())
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.com "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, r)

	r, err = ParseRole(" Employee ")
	require.NoError(t, err)
	require.Equal(t, RoleEmployee, r)

	_, err = ParseRole("superuser")
	require.Error(t, err)
	require.False(t, Role("").Valid())
}
