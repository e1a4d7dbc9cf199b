package account

import "time"

type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// AccountListResponse mirrors the admin dashboard split between student and
// faculty accounts.
type AccountListResponse struct {
	Students []AccountResponse `json:"students"`
	Faculty  []AccountResponse `json:"faculty"`
}

func mapToResponse(a Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(accounts []Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = mapToResponse(a)
	}
	return resp
}
