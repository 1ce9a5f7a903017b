package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
