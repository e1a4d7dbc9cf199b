package authz_test

import (
	"testing"

	"go-lms/internal/authz"
	"go-lms/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func claimWithRole(role authz.Role) authz.Claim {
	return authz.Claim{
		UserID: uuid.New().String(),
		Email:  "someone@campus.edu",
		Name:   "Someone",
		Role:   role,
	}
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, apperror.ToHTTP(err).Code)
}

func TestGuard_CreateScope(t *testing.T) {
	guard, err := authz.NewGuard()
	assert.NoError(t, err)

	t.Run("student may create standard and exam leaves", func(t *testing.T) {
		c := claimWithRole(authz.RoleStudent)
		assert.NoError(t, guard.Authorize(c, authz.ObjectLeave, authz.ActionCreate))
		assert.NoError(t, guard.Authorize(c, authz.ObjectExamLeave, authz.ActionCreate))
	})

	t.Run("student may not create faculty leave", func(t *testing.T) {
		c := claimWithRole(authz.RoleStudent)
		assertForbidden(t, guard.Authorize(c, authz.ObjectFacultyLeave, authz.ActionCreate))
	})

	t.Run("faculty may create only faculty leave", func(t *testing.T) {
		c := claimWithRole(authz.RoleFaculty)
		assert.NoError(t, guard.Authorize(c, authz.ObjectFacultyLeave, authz.ActionCreate))
		assertForbidden(t, guard.Authorize(c, authz.ObjectLeave, authz.ActionCreate))
	})
}

func TestGuard_ReviewScope(t *testing.T) {
	guard, err := authz.NewGuard()
	assert.NoError(t, err)

	t.Run("faculty reviews student leaves", func(t *testing.T) {
		c := claimWithRole(authz.RoleFaculty)
		assert.NoError(t, guard.Authorize(c, authz.ObjectLeave, authz.ActionReview))
		assert.NoError(t, guard.Authorize(c, authz.ObjectExamLeave, authz.ActionReview))
	})

	t.Run("faculty may not review faculty leave", func(t *testing.T) {
		c := claimWithRole(authz.RoleFaculty)
		assertForbidden(t, guard.Authorize(c, authz.ObjectFacultyLeave, authz.ActionReview))
	})

	t.Run("admin and hod review everything", func(t *testing.T) {
		for _, role := range []authz.Role{authz.RoleAdmin, authz.RoleHod} {
			c := claimWithRole(role)
			assert.NoError(t, guard.Authorize(c, authz.ObjectLeave, authz.ActionReview))
			assert.NoError(t, guard.Authorize(c, authz.ObjectExamLeave, authz.ActionReview))
			assert.NoError(t, guard.Authorize(c, authz.ObjectFacultyLeave, authz.ActionReview))
		}
	})

	t.Run("student never reviews", func(t *testing.T) {
		c := claimWithRole(authz.RoleStudent)
		assertForbidden(t, guard.Authorize(c, authz.ObjectLeave, authz.ActionReview))
	})
}

func TestGuard_AccountManagement(t *testing.T) {
	guard, err := authz.NewGuard()
	assert.NoError(t, err)

	assert.NoError(t, guard.Authorize(claimWithRole(authz.RoleAdmin), authz.ObjectAccount, authz.ActionManage))
	assertForbidden(t, guard.Authorize(claimWithRole(authz.RoleHod), authz.ObjectAccount, authz.ActionManage))
	assertForbidden(t, guard.Authorize(claimWithRole(authz.RoleFaculty), authz.ObjectAccount, authz.ActionManage))
}

func TestGuard_AuthorizeOwner(t *testing.T) {
	guard, err := authz.NewGuard()
	assert.NoError(t, err)

	t.Run("owner passes regardless of role", func(t *testing.T) {
		c := claimWithRole(authz.RoleStudent)
		assert.NoError(t, guard.AuthorizeOwner(c, c.UserID, authz.ObjectLeave, authz.ActionDelete))
	})

	t.Run("non-owner falls back to role policy", func(t *testing.T) {
		c := claimWithRole(authz.RoleStudent)
		assertForbidden(t, guard.AuthorizeOwner(c, uuid.New().String(), authz.ObjectLeave, authz.ActionDelete))

		reviewer := claimWithRole(authz.RoleFaculty)
		assert.NoError(t, guard.AuthorizeOwner(reviewer, uuid.New().String(), authz.ObjectLeave, authz.ActionDelete))
	})

	t.Run("empty claim is unauthenticated", func(t *testing.T) {
		err := guard.AuthorizeOwner(authz.Claim{}, uuid.New().String(), authz.ObjectLeave, authz.ActionDelete)
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeUnauthorized, apperror.ToHTTP(err).Code)
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"student", "faculty", "admin", "hod"} {
		role, err := authz.ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, role.String())
	}

	_, err := authz.ParseRole("Staff")
	assert.Error(t, err)
}
