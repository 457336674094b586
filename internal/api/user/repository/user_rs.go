package userRepository

import (
	"BlogGolang/internal/api/user"
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type UserDB struct {
	ID        sql.NullString `db:"id"`
	Email     sql.NullString `db:"email"`
	Name      sql.NullString `db:"name"`
	Password  sql.NullString `db:"password"`
	Role      sql.NullString `db:"role"`
	Avatar    sql.NullString `db:"avatar"`
	Bio       sql.NullString `db:"bio"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type UserWithPostCountDB struct {
	UserDB
	PostCount int `db:"post_count"`
}

func translateConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "users_email_key" {
			return user.ErrEmailExists
		}
	}
	return err
}

func (r *usersRepository) CreateUser(ctx context.Context, userData entity.User) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         userData.ID,
		"email":      userData.Email,
		"name":       userData.Name,
		"password":   userData.Password,
		"role":       userData.Role,
		"avatar":     userData.Avatar,
		"bio":        userData.Bio,
		"created_at": userData.CreatedAt,
		"updated_at": userData.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("User email uniqueness violation")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")
		return err
	}

	return nil
}

func (r *usersRepository) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	return r.selectUsers(ctx, queryGetAllUsers, map[string]interface{}{}, "GetAllUsers")
}

func (r *usersRepository) GetUsersByRole(ctx context.Context, role string) ([]entity.User, error) {
	return r.selectUsers(ctx, queryGetUsersByRole, map[string]interface{}{
		"role": role,
	}, "GetUsersByRole")
}

func (r *usersRepository) selectUsers(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) ([]entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var usersList []UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &usersList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return nil, err
	}

	users := make([]entity.User, 0, len(usersList))
	for _, userDB := range usersList {
		users = append(users, r.makeUser(userDB))
	}

	return users, nil
}

func (r *usersRepository) GetActiveUsers(ctx context.Context, limit int) ([]entity.UserWithPostCount, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var usersList []UserWithPostCountDB

	query, args, err := sqlx.Named(queryGetActiveUsers, map[string]interface{}{
		"limit": limit,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetActiveUsers named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &usersList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetActiveUsers execution err")
		return nil, err
	}

	users := make([]entity.UserWithPostCount, 0, len(usersList))
	for _, row := range usersList {
		users = append(users, entity.UserWithPostCount{
			User:      r.makeUser(row.UserDB),
			PostCount: row.PostCount,
		})
	}

	return users, nil
}

func (r *usersRepository) GetStats(ctx context.Context) (entity.UserStats, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var stats entity.UserStats

	query, args, err := sqlx.Named(queryGetUserStats, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStats named query preparation err")
		return entity.UserStats{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&stats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStats execution err")
		return entity.UserStats{}, err
	}

	return stats, nil
}

func (r *usersRepository) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	return r.getUser(ctx, queryGetUserByID, map[string]interface{}{"id": id}, "GetUserByID")
}

func (r *usersRepository) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.getUser(ctx, queryGetUserByEmail, map[string]interface{}{"email": email}, "GetUserByEmail")
}

func (r *usersRepository) getUser(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var userRow UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&userRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn(op + " no rows found")
			return entity.User{}, user.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.User{}, err
	}

	return r.makeUser(userRow), nil
}

func (r *usersRepository) GetPostSummaries(ctx context.Context, userID string) ([]entity.PostSummaryWithCategory, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var posts []entity.PostSummaryWithCategory

	query, args, err := sqlx.Named(queryGetUserPostSummaries, map[string]interface{}{
		"author_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummaries named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &posts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPostSummaries execution err")
		return nil, err
	}

	return posts, nil
}

func (r *usersRepository) CountPosts(ctx context.Context, userID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	query, args, err := sqlx.Named(queryCountUserPosts, map[string]interface{}{
		"author_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountPosts execution err")
		return 0, err
	}

	return total, nil
}

func (r *usersRepository) UpdateUser(ctx context.Context, userData entity.User) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         userData.ID,
		"email":      userData.Email,
		"name":       userData.Name,
		"role":       userData.Role,
		"avatar":     userData.Avatar,
		"bio":        userData.Bio,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateUser named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if translated := translateConstraintErr(err); translated != err {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("User email uniqueness violation on update")
			return translated
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateUser execution err")
		return err
	}

	return r.requireRowsAffected(result, requestID, userData.ID, "UpdateUser")
}

func (r *usersRepository) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         id,
		"password":   hashedPassword,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateUserPassword, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePassword named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdatePassword execution err")
		return err
	}

	return r.requireRowsAffected(result, requestID, id, "UpdatePassword")
}

func (r *usersRepository) DeleteUser(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteUser, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteUser named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteUser execution err")
		return err
	}

	return r.requireRowsAffected(result, requestID, id, "DeleteUser")
}

func (r *usersRepository) requireRowsAffected(result sql.Result, requestID string, id string, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn(op + " no rows affected")
		return user.ErrUserNotFound
	}

	return nil
}

func (r *usersRepository) makeUser(userRow UserDB) entity.User {
	return entity.User{
		ID:        userRow.ID.String,
		Email:     userRow.Email.String,
		Name:      userRow.Name.String,
		Password:  userRow.Password.String,
		Role:      userRow.Role.String,
		Avatar:    userRow.Avatar.String,
		Bio:       userRow.Bio.String,
		CreatedAt: userRow.CreatedAt,
		UpdatedAt: userRow.UpdatedAt,
	}
}
