package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/chronotes/chronotes/internal/model"
	"github.com/chronotes/chronotes/internal/pkg/dbutil"
	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
)

var userColumns = []string{"id", "email", "password_hash", "username", "avatar_url", "bio", "status", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Insert returns the number of rows written. A unique violation on
// email comes back as ErrEmailTaken so concurrent registrations for the
// same address resolve at the store.
func (r *UserRepo) Insert(ctx context.Context, user *model.User) (int64, error) {
	data := map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"username":      user.Username,
		"avatar_url":    user.AvatarURL,
		"bio":           user.Bio,
		"status":        user.Status,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return 0, appErr.ErrEmailTaken
		}
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, map[string]interface{}{"id": id})
}

func (r *UserRepo) findOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var user model.User
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Username, &user.AvatarURL, &user.Bio, &user.Status, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update rewrites the mutable profile fields of user by id and returns
// the number of rows touched.
func (r *UserRepo) Update(ctx context.Context, user *model.User) (int64, error) {
	where := map[string]interface{}{"id": user.ID}
	update := map[string]interface{}{
		"username":   user.Username,
		"avatar_url": user.AvatarURL,
		"bio":        user.Bio,
		"status":     user.Status,
		"mtime":      user.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
