package domain

import "time"

type MessageStatus string

const (
	MessageStatusNew     MessageStatus = "new"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

// ValidMessageStatus reports whether s names a known message status.
func ValidMessageStatus(s string) bool {
	switch MessageStatus(s) {
	case MessageStatusNew, MessageStatusRead, MessageStatusReplied:
		return true
	}
	return false
}

// Feedback is a per-product review left by a buyer. Append-only.
type Feedback struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	UserID    int64     `gorm:"not null" json:"user_id,string" form:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID int64     `gorm:"index;not null" json:"product_id,string" form:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    int       `gorm:"default:5;check:rating >= 1 AND rating <= 5" json:"rating" form:"rating"`
	Comment   string    `json:"comment" form:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (Feedback) TableName() string {
	return "feedbacks"
}

// GeneralFeedback is site-wide feedback submitted from the public
// feedback form, optionally linked to a logged-in user.
type GeneralFeedback struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	UserID    *int64        `json:"user_id,string" form:"user_id"`
	User      *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string        `gorm:"size:100;not null" json:"name" form:"name"`
	Email     string        `gorm:"size:100;not null" json:"email" form:"email"`
	Subject   string        `gorm:"size:200" json:"subject" form:"subject"`
	Message   string        `gorm:"not null" json:"message" form:"message"`
	Rating    int           `gorm:"default:5;check:rating >= 1 AND rating <= 5" json:"rating" form:"rating"`
	Status    MessageStatus `gorm:"size:16;default:new" json:"status" form:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// TableName Specify table name
func (GeneralFeedback) TableName() string {
	return "general_feedback"
}

// ContactMessage is a message from the public contact form.
type ContactMessage struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id,string" form:"id"`
	UserID    *int64        `json:"user_id,string" form:"user_id"`
	User      *User         `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Name      string        `gorm:"size:100;not null" json:"name" form:"name"`
	Email     string        `gorm:"size:100;not null" json:"email" form:"email"`
	Phone     string        `gorm:"size:20" json:"phone" form:"phone"`
	Subject   string        `gorm:"size:200;not null" json:"subject" form:"subject"`
	Message   string        `gorm:"not null" json:"message" form:"message"`
	Status    MessageStatus `gorm:"size:16;default:new" json:"status" form:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "contact_messages"
}
