package user

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	insert(user *User) (int64, error)
	update(user *User) (bool, error)
	getByUid(uid string) (*User, error)
	getByUsername(username string) (*User, error)
	getAll() ([]*User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{db: db}
}

func (r *userRepository) insert(user *User) (int64, error) {
	permissions, err := json.Marshal(user.Permissions)
	if err != nil {
		return 0, fmt.Errorf("could not encode permissions: %v", err)
	}

	query := `
		INSERT INTO users (uid, username, password_hash, permissions)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	var id int64
	err = r.db.QueryRow(query, user.Uid, user.Username, user.PasswordHash, permissions).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create user: %v", err)
	}

	user.ID = id
	return id, nil
}

func (r *userRepository) update(user *User) (bool, error) {
	permissions, err := json.Marshal(user.Permissions)
	if err != nil {
		return false, fmt.Errorf("could not encode permissions: %v", err)
	}

	query := `
		UPDATE users
		SET username = $2, password_hash = $3, permissions = $4
		WHERE uid = $1;
	`
	res, err := r.db.Exec(query, user.Uid, user.Username, user.PasswordHash, permissions)
	if err != nil {
		return false, fmt.Errorf("could not update user: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read update result: %v", err)
	}
	return affected > 0, nil
}

func (r *userRepository) getByUid(uid string) (*User, error) {
	query := `
		SELECT id, uid, username, password_hash, permissions
		FROM users
		WHERE uid = $1;
	`
	return r.scanUser(r.db.QueryRow(query, uid))
}

func (r *userRepository) getByUsername(username string) (*User, error) {
	query := `
		SELECT id, uid, username, password_hash, permissions
		FROM users
		WHERE username = $1;
	`
	return r.scanUser(r.db.QueryRow(query, username))
}

func (r *userRepository) getAll() ([]*User, error) {
	query := `
		SELECT id, uid, username, password_hash, permissions
		FROM users
		ORDER BY id;
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %v", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		var permissions []byte
		if err := rows.Scan(&u.ID, &u.Uid, &u.Username, &u.PasswordHash, &permissions); err != nil {
			return nil, fmt.Errorf("could not scan user: %v", err)
		}
		if err := json.Unmarshal(permissions, &u.Permissions); err != nil {
			return nil, fmt.Errorf("could not decode permissions: %v", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list users: %v", err)
	}
	return users, nil
}

func (r *userRepository) scanUser(row *sql.Row) (*User, error) {
	var u User
	var permissions []byte
	err := row.Scan(&u.ID, &u.Uid, &u.Username, &u.PasswordHash, &permissions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	if err := json.Unmarshal(permissions, &u.Permissions); err != nil {
		return nil, fmt.Errorf("could not decode permissions: %v", err)
	}
	return &u, nil
}
