package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a marketplace account. Every user may also act as a seller.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	Name      string    `gorm:"size:100" json:"name" form:"name"`
	Email     string    `gorm:"size:100;uniqueIndex" json:"email" form:"email"`
	Password  string    `gorm:"size:255" json:"-" form:"-"`
	Phone     string    `gorm:"size:20" json:"phone" form:"phone"`
	Address   string    `json:"address" form:"address"`
	Role      string    `gorm:"size:16;default:user" json:"role" form:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
