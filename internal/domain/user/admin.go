package user

import "time"

// Admin is a back-office account. AdminKey holds a bcrypt hash of the
// secondary key required at login.
type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	AdminKey  string    `gorm:"not null;column:admin_key" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Admin) TableName() string { return "admins" }
