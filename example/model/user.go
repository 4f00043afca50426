package model

import (
	"strings"
	"time"
)

// User has a read-only username and a password without accessors; neither
// ends up in UserVO.
type User struct {
	id       int64
	username string
	password string
	about    *string
	birthday *time.Time
	active   bool
	created  time.Time
}

func (u *User) GetId() int64 { return u.id }

func (u *User) SetId(id int64) { u.id = id }

func (u *User) GetUsername() string { return u.username }

func (u *User) GetAbout() *string { return u.about }

func (u *User) SetAbout(about *string) { u.about = about }

func (u *User) GetBirthday() *time.Time { return u.birthday }

func (u *User) SetBirthday(birthday *time.Time) { u.birthday = birthday }

func (u *User) IsActive() bool { return u.active }

func (u *User) SetActive(active bool) { u.active = active }

// GetCreated returns a value, the setter takes a pointer: created is skipped
func (u *User) GetCreated() time.Time { return u.created }

func (u *User) SetCreated(created *time.Time) { u.created = *created }

func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) == u.password
}

func (u *User) MethodToIgnore() {}
