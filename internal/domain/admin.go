package domain

import "time"

// Admin описывает учетную запись администратора магазина
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
}
