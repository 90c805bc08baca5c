package user

// User is the persisted user record. Every field is a pointer so an absent
// field survives a JSON round-trip as distinct from a zero value; the
// transport layer binds request payloads straight into this type.
//
// A persisted user always carries a non-nil UserID; the persistence gateway
// assigns it on first save and it is immutable afterwards.
type User struct {
	UserID      *int64  `json:"userId"`
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	BirthDate   *Date   `json:"birthDate"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

// IsEmpty reports whether the payload carries no data at all: the identifier
// and every other field absent. A payload with only some fields absent is
// not empty.
func (u *User) IsEmpty() bool {
	if u == nil {
		return true
	}
	return u.UserID == nil &&
		u.Email == nil &&
		u.FirstName == nil &&
		u.LastName == nil &&
		u.BirthDate == nil &&
		u.Address == nil &&
		u.PhoneNumber == nil
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := &User{}
	if u.UserID != nil {
		v := *u.UserID
		c.UserID = &v
	}
	c.Email = cloneString(u.Email)
	c.FirstName = cloneString(u.FirstName)
	c.LastName = cloneString(u.LastName)
	if u.BirthDate != nil {
		v := *u.BirthDate
		c.BirthDate = &v
	}
	c.Address = cloneString(u.Address)
	c.PhoneNumber = cloneString(u.PhoneNumber)
	return c
}

// ApplyPatch overwrites u's fields with the provided fields of src. A nil
// field, or an empty string, counts as not provided and leaves the stored
// value in place; there is deliberately no way to clear a string field this
// way. UserID is never patched.
func (u *User) ApplyPatch(src *User) {
	if v := patchString(src.Email); v != nil {
		u.Email = v
	}
	if v := patchString(src.FirstName); v != nil {
		u.FirstName = v
	}
	if v := patchString(src.LastName); v != nil {
		u.LastName = v
	}
	if src.BirthDate != nil {
		bd := *src.BirthDate
		u.BirthDate = &bd
	}
	if v := patchString(src.Address); v != nil {
		u.Address = v
	}
	if v := patchString(src.PhoneNumber); v != nil {
		u.PhoneNumber = v
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func patchString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
