// Package po holds the persistence objects mapped to database tables,
// separate from the domain records they are rebuilt into.
package po

import (
	"time"

	"github.com/nesmy/users-api/domain/user"
)

// UserPO is the row mapping for the users table. Required columns are plain
// values because validation runs before anything is persisted; address and
// phone number stay nullable.
type UserPO struct {
	UserID      int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Email       string    `gorm:"column:email;size:255;not null"`
	FirstName   string    `gorm:"column:first_name;size:100;not null"`
	LastName    string    `gorm:"column:last_name;size:100;not null"`
	BirthDate   time.Time `gorm:"column:birth_date;type:date;not null;index"`
	Address     *string   `gorm:"column:address;size:255"`
	PhoneNumber *string   `gorm:"column:phone_number;size:32"`
}

// TableName implements the gorm table naming convention.
func (UserPO) TableName() string { return "users" }

// FromDomain maps a validated domain user onto a row.
func FromDomain(u *user.User) *UserPO {
	p := &UserPO{}
	if u.UserID != nil {
		p.UserID = *u.UserID
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.BirthDate != nil {
		p.BirthDate = u.BirthDate.Time()
	}
	if u.Address != nil {
		v := *u.Address
		p.Address = &v
	}
	if u.PhoneNumber != nil {
		v := *u.PhoneNumber
		p.PhoneNumber = &v
	}
	return p
}

// ToDomain rebuilds the domain user from a row.
func (p *UserPO) ToDomain() *user.User {
	id := p.UserID
	email := p.Email
	firstName := p.FirstName
	lastName := p.LastName
	birthDate := user.DateOf(p.BirthDate)

	u := &user.User{
		UserID:    &id,
		Email:     &email,
		FirstName: &firstName,
		LastName:  &lastName,
		BirthDate: &birthDate,
	}
	if p.Address != nil {
		v := *p.Address
		u.Address = &v
	}
	if p.PhoneNumber != nil {
		v := *p.PhoneNumber
		u.PhoneNumber = &v
	}
	return u
}
