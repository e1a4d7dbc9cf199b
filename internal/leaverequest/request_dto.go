package leaverequest

import "time"

type CreateRequestInput struct {
	Kind     string `json:"kind" binding:"required,oneof=standard exam faculty"`
	FromDate string `json:"from_date" binding:"required"`
	ToDate   string `json:"to_date" binding:"required"`
	Reason   string `json:"reason" binding:"required"`

	// Kind-specific payload; requiredness is enforced per kind in the service.
	LeaveType     string  `json:"type"`
	Year          string  `json:"year"`
	Department    string  `json:"department"`
	FacultyName   string  `json:"faculty_name"`
	AttachmentURL *string `json:"attachment_url"`
}

type ReviewRequestInput struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

// QueueFilter narrows the review queue. Kind is required for scoping; status
// and department are optional.
type QueueFilter struct {
	Kind       Kind
	Status     string
	Department string
}

type RequestResponse struct {
	ID            string  `json:"id"`
	RequestNumber string  `json:"request_number"`
	Kind          string  `json:"kind"`
	RequesterID   string  `json:"requester_id"`
	Year          string  `json:"year,omitempty"`
	Department    string  `json:"department,omitempty"`
	FacultyName   string  `json:"faculty_name,omitempty"`
	LeaveType     string  `json:"type,omitempty"`
	FromDate      string  `json:"from_date"`
	ToDate        string  `json:"to_date"`
	Reason        string  `json:"reason"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	Comment       string  `json:"comment,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func mapToResponse(r LeaveRequest) RequestResponse {
	resp := RequestResponse{
		ID:            r.ID.String(),
		RequestNumber: r.RequestNumber,
		Kind:          string(r.Kind),
		RequesterID:   r.RequesterID.String(),
		Year:          r.Year,
		Department:    r.Department,
		FacultyName:   r.FacultyName,
		LeaveType:     r.LeaveType,
		FromDate:      r.FromDate.Format("2006-01-02"),
		ToDate:        r.ToDate.Format("2006-01-02"),
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        r.Status,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewedBy != nil {
		v := r.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []RequestResponse {
	resp := make([]RequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
