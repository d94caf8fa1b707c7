package user

import (
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (User, error)
	ExistsByRegistrationNumber(ctx context.Context, registrationNumber string) (bool, error)
	Count(ctx context.Context) (int64, error)
	// LockForUpdate takes a row lock on the user for the rest of the transaction.
	LockForUpdate(ctx context.Context, id string) error
}
