package leaverequest

import (
	"time"

	"github.com/google/uuid"

	"go-lms/internal/authz"
)

// Kind tags the three request variants. They share one table, one state
// machine and one policy table; only required payload fields and reviewer
// scope differ.
type Kind string

const (
	KindStandard Kind = "standard"
	KindExam     Kind = "exam"
	KindFaculty  Kind = "faculty"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStandard, KindExam, KindFaculty:
		return Kind(s), true
	default:
		return "", false
	}
}

// PolicyObject maps the kind onto the authorization policy object it is
// governed by.
func (k Kind) PolicyObject() string {
	switch k {
	case KindExam:
		return authz.ObjectExamLeave
	case KindFaculty:
		return authz.ObjectFacultyLeave
	default:
		return authz.ObjectLeave
	}
}

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// canTransition is the whole state machine: Pending is the only non-terminal
// state, and it moves exactly once, to Approved or Rejected.
func canTransition(currentStatus, targetStatus string) bool {
	if currentStatus != StatusPending {
		return false
	}
	return targetStatus == StatusApproved || targetStatus == StatusRejected
}

func isTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

type LeaveRequest struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestNumber string    `gorm:"column:request_number;type:varchar(20);uniqueIndex;not null"`
	Kind          Kind      `gorm:"column:kind;type:varchar(20);not null;index:idx_requests_kind_status"`
	RequesterID   uuid.UUID `gorm:"column:requester_id;type:uuid;not null;index"`

	Year          string    `gorm:"column:year;type:varchar(10)"`
	Department    string    `gorm:"column:department;type:varchar(100)"`
	FacultyName   string    `gorm:"column:faculty_name;type:varchar(255)"`
	LeaveType     string    `gorm:"column:leave_type;type:varchar(30)"`
	FromDate      time.Time `gorm:"column:from_date;type:date;not null"`
	ToDate        time.Time `gorm:"column:to_date;type:date;not null"`
	Reason        string    `gorm:"column:reason;type:text;not null"`
	AttachmentURL *string   `gorm:"column:attachment_url;type:text"`

	Status     string     `gorm:"column:status;type:varchar(20);not null;default:'Pending';index:idx_requests_kind_status"`
	Comment    string     `gorm:"column:comment;type:text;not null;default:''"`
	ReviewedBy *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
