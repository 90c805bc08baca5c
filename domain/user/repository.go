package user

import "context"

// Repository is the persistence gateway for user records.
type Repository interface {
	// FindByID returns the stored user, or nil without error when no record
	// exists. Absence is a valid result at this layer.
	FindByID(ctx context.Context, id int64) (*User, error)

	// Save persists the user. When UserID is unset the record is inserted and
	// the gateway assigns the identity; otherwise the stored row is replaced
	// in full. The returned user always carries the identifier.
	Save(ctx context.Context, u *User) (*User, error)

	// Delete removes the record with the given id. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id int64) error

	// FindByBirthDateBetween returns all users whose birth date falls in
	// [start, end], inclusive, ordered by birth date.
	FindByBirthDateBetween(ctx context.Context, start, end Date) ([]*User, error)
}
