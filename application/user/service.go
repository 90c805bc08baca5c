/*
Package user contains the user application service: it orchestrates the CRUD
operations, enforces the business rules (minimum age, key consistency,
non-empty payload, valid date range) and translates every expected failure
into the apierr taxonomy. HTTP status mapping stays in the API layer.
*/
package user

import (
	"context"

	"github.com/nesmy/users-api/domain/user"
	"github.com/nesmy/users-api/pkg/apierr"
)

// DefaultMinAge is the minimum-age threshold used when none is configured.
const DefaultMinAge = 18

// Service coordinates user operations against the persistence gateway.
// Every precondition is checked before the gateway is touched, so a failed
// operation never partially applies a mutation.
type Service struct {
	repo      user.Repository
	validator *user.Validator
	minAge    int
}

// NewService creates the user service. The validator is a single long-lived
// instance injected at construction.
func NewService(repo user.Repository, validator *user.Validator, minAge int) *Service {
	if minAge <= 0 {
		minAge = DefaultMinAge
	}
	return &Service{
		repo:      repo,
		validator: validator,
		minAge:    minAge,
	}
}

// MinAge returns the configured minimum-age threshold.
func (s *Service) MinAge() int { return s.minAge }

// FindByID returns the stored user, or nil when no record exists. Absence is
// a valid result, not an error; the caller decides how to report it.
func (s *Service) FindByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return u, nil
}

// Create validates and persists a new user. The gateway assigns the
// identifier on persist.
//
// The age comparison is strictly greater-than: a user turning exactly the
// minimum age today is still rejected.
func (s *Service) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if u.IsEmpty() {
		return nil, apierr.NoDataSubmitted()
	}
	if err := s.validate(u); err != nil {
		return nil, err
	}
	if u.BirthDate.YearsUntil(user.Today()) <= s.minAge {
		return nil, apierr.BelowMinimumAge(s.minAge)
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return saved, nil
}

// Update replaces the stored record entirely with u. The payload's
// identifier must match the path identifier and the record must exist.
func (s *Service) Update(ctx context.Context, id int64, u *user.User) (*user.User, error) {
	if _, err := s.checkTarget(ctx, id, u); err != nil {
		return nil, err
	}

	if err := s.validate(u); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return saved, nil
}

// Patch merges the provided fields of u into the stored record and
// revalidates the merged result before persisting it. A nil field, or an
// empty string, is treated as not provided; the identifier is never merged.
func (s *Service) Patch(ctx context.Context, id int64, u *user.User) (*user.User, error) {
	existing, err := s.checkTarget(ctx, id, u)
	if err != nil {
		return nil, err
	}

	merged := existing.Clone()
	merged.ApplyPatch(u)

	if err := s.validate(merged); err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, merged)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return saved, nil
}

// DeleteByID removes the record and reports whether it existed. Absence is a
// boolean outcome, not an error.
func (s *Service) DeleteByID(ctx context.Context, id int64) (bool, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, apierr.Internal(err)
	}
	if existing == nil {
		return false, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return false, apierr.Internal(err)
	}
	return true, nil
}

// FindByBirthDateBetween returns the users born in [start, end]. The start
// date must be strictly before the end date.
func (s *Service) FindByBirthDateBetween(ctx context.Context, start, end user.Date) ([]*user.User, error) {
	if !start.Before(end) {
		return nil, apierr.InvalidDateRange()
	}
	users, err := s.repo.FindByBirthDateBetween(ctx, start, end)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return users, nil
}

// checkTarget runs the shared update/patch preconditions: non-empty payload,
// payload identifier matching the path identifier, and an existing record.
func (s *Service) checkTarget(ctx context.Context, id int64, u *user.User) (*user.User, error) {
	if u.IsEmpty() {
		return nil, apierr.NoDataSubmitted()
	}
	if u.UserID == nil || *u.UserID != id {
		return nil, apierr.KeyFieldMismatch()
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing == nil {
		return nil, apierr.RecordNotFound()
	}
	return existing, nil
}

func (s *Service) validate(u *user.User) error {
	violations := s.validator.Validate(u)
	if len(violations) == 0 {
		return nil
	}
	fieldErrs := make([]apierr.FieldError, len(violations))
	for i, v := range violations {
		fieldErrs[i] = apierr.FieldError{FieldName: v.FieldName, Message: v.Message}
	}
	return apierr.Validation(fieldErrs)
}
