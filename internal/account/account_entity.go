package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is an identity record. Role is immutable after registration; there
// is no role-change operation anywhere in the API.
type Account struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"column:password;type:text;not null"` // bcrypt hash
	Role      string    `gorm:"column:role;type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
