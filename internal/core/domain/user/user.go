package user

import (
	c "resetpoint/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID           ID
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
	DeletedAt    c.Optional[time.Time]
}

func (u *User) IsActive() bool {
	return !u.DeletedAt.IsPresent
}
