package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"go-lms/internal/shared/apperror"
)

// Objects the policy table speaks about. The three request kinds are separate
// objects because reviewer scope differs per kind.
const (
	ObjectLeave        = "leave"
	ObjectExamLeave    = "exam_leave"
	ObjectFacultyLeave = "faculty_leave"
	ObjectAccount      = "account"
)

const (
	ActionCreate    = "create"
	ActionReadQueue = "read_queue"
	ActionReview    = "review"
	ActionDelete    = "delete"
	ActionManage    = "manage"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policyTable is the exhaustive (role, object, action) allow list. Students
// submit standard and exam leaves; faculty submit their own leaves and review
// student leaves; only admin and hod review faculty leaves; only admin manages
// accounts.
var policyTable = [][3]string{
	{string(RoleStudent), ObjectLeave, ActionCreate},
	{string(RoleStudent), ObjectExamLeave, ActionCreate},

	{string(RoleFaculty), ObjectFacultyLeave, ActionCreate},
	{string(RoleFaculty), ObjectLeave, ActionReadQueue},
	{string(RoleFaculty), ObjectLeave, ActionReview},
	{string(RoleFaculty), ObjectLeave, ActionDelete},
	{string(RoleFaculty), ObjectExamLeave, ActionReadQueue},
	{string(RoleFaculty), ObjectExamLeave, ActionReview},
	{string(RoleFaculty), ObjectExamLeave, ActionDelete},

	{string(RoleAdmin), ObjectLeave, ActionReadQueue},
	{string(RoleAdmin), ObjectLeave, ActionReview},
	{string(RoleAdmin), ObjectLeave, ActionDelete},
	{string(RoleAdmin), ObjectExamLeave, ActionReadQueue},
	{string(RoleAdmin), ObjectExamLeave, ActionReview},
	{string(RoleAdmin), ObjectExamLeave, ActionDelete},
	{string(RoleAdmin), ObjectFacultyLeave, ActionReadQueue},
	{string(RoleAdmin), ObjectFacultyLeave, ActionReview},
	{string(RoleAdmin), ObjectFacultyLeave, ActionDelete},
	{string(RoleAdmin), ObjectAccount, ActionManage},

	{string(RoleHod), ObjectLeave, ActionReadQueue},
	{string(RoleHod), ObjectLeave, ActionReview},
	{string(RoleHod), ObjectLeave, ActionDelete},
	{string(RoleHod), ObjectExamLeave, ActionReadQueue},
	{string(RoleHod), ObjectExamLeave, ActionReview},
	{string(RoleHod), ObjectExamLeave, ActionDelete},
	{string(RoleHod), ObjectFacultyLeave, ActionReadQueue},
	{string(RoleHod), ObjectFacultyLeave, ActionReview},
	{string(RoleHod), ObjectFacultyLeave, ActionDelete},
}

// Guard answers allow/deny for (claim, object, action). Policy is static and
// loaded once; there is no per-tenant reload.
type Guard struct {
	enforcer *casbin.Enforcer
}

func NewGuard() (*Guard, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policyTable {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &Guard{enforcer: enforcer}, nil
}

// Authorize returns nil when the claim's role may perform action on object,
// an Unauthorized error when the claim is empty, and Forbidden otherwise.
func (g *Guard) Authorize(claim Claim, object, action string) error {
	if claim.UserID == "" {
		return apperror.ErrUnauthorized
	}

	allowed, err := g.enforcer.Enforce(claim.Role.String(), object, action)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "authorization check failed", 500)
	}
	if !allowed {
		return apperror.ErrForbidden
	}
	return nil
}

// AuthorizeOwner allows the resource owner through unconditionally, otherwise
// falls back to the role policy. Used for delete and single-request reads,
// where a requester always keeps access to their own record.
func (g *Guard) AuthorizeOwner(claim Claim, ownerID, object, action string) error {
	if claim.UserID == "" {
		return apperror.ErrUnauthorized
	}
	if ownerID != "" && claim.UserID == ownerID {
		return nil
	}
	return g.Authorize(claim, object, action)
}
