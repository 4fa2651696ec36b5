package models

import "time"

// MaxAddresses caps the address book per user.
const MaxAddresses = 5

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"unique;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	AvatarURL     string     `json:"avatar_url"`
	EmailVerified bool       `json:"email_verified"`
	Roles         []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Addresses     []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Cart          Cart       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders        []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type UserRole struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"index;not null" json:"-"`
	Name   string `gorm:"not null" json:"name"`
}

// RoleNames is the single accessor for a user's roles. Every response
// body and token claim set derives from it; nothing reads the Roles rows
// directly. An empty role set resolves to CUSTOMER.
func (u *User) RoleNames() []string {
	seen := make(map[string]bool, len(u.Roles))
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r.Name == "" || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		names = append(names, r.Name)
	}
	if len(names) == 0 {
		return []string{RoleCustomer}
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.RoleNames() {
		if r == name {
			return true
		}
	}
	return false
}

type Address struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index;not null" json:"-"`
	Label      string    `json:"label"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Country    string    `json:"country"`
	State      string    `json:"state"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}
