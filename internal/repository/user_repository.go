package repository

import (
	"context"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"
)

type UserRepository struct {
	Store SnapshotStore
}

func NewUserRepository(store SnapshotStore) *UserRepository {
	return &UserRepository{Store: store}
}

// Create inserts user unless a user with the same email exists.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.Store.Update(ctx, func(snap *model.Snapshot) error {
		if findUserByEmail(snap, user.Email) != nil {
			return util.ErrEmailRegistered
		}
		snap.Users = append(snap.Users, *user)
		return nil
	})
}

// CreateIfEmpty inserts users only when the store holds no users at all.
func (r *UserRepository) CreateIfEmpty(ctx context.Context, users []model.User) (bool, error) {
	var created bool
	err := r.Store.Update(ctx, func(snap *model.Snapshot) error {
		created = false
		if len(snap.Users) > 0 {
			return nil
		}
		snap.Users = append(snap.Users, users...)
		created = true
		return nil
	})
	return created, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	snap, err := r.Store.Read(ctx)
	if err != nil {
		return nil, err
	}
	user := findUserByEmail(snap, email)
	if user == nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	snap, err := r.Store.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snap.Users {
		if snap.Users[i].ID == id {
			user := snap.Users[i]
			return &user, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	snap, err := r.Store.Read(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.Users), nil
}

// findUserByEmail compares canonical forms so legacy mixed-case records still match.
func findUserByEmail(snap *model.Snapshot, email string) *model.User {
	email = model.CanonicalEmail(email)
	for i := range snap.Users {
		if model.CanonicalEmail(snap.Users[i].Email) == email {
			user := snap.Users[i]
			return &user
		}
	}
	return nil
}
