package auth

import (
	"database/sql"
	"errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Save(user *User) error {
	query := `
		INSERT INTO users (username, email, password, role)
		VALUES (?, ?, ?, ?)
	`
	res, err := r.db.Exec(query, user.Username, user.Email, user.Password, user.Role)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *MySQLUserRepository) FindByUsername(username string) (*User, error) {
	query := `
		SELECT id, username, email, password, role, created_at, updated_at
		FROM users WHERE username = ?
	`
	row := r.db.QueryRow(query, username)

	user := &User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *MySQLUserRepository) ExistsByUsername(username string) (bool, error) {
	return r.exists(`SELECT 1 FROM users WHERE username = ? LIMIT 1`, username)
}

func (r *MySQLUserRepository) ExistsByEmail(email string) (bool, error) {
	return r.exists(`SELECT 1 FROM users WHERE email = ? LIMIT 1`, email)
}

func (r *MySQLUserRepository) exists(query, arg string) (bool, error) {
	var one int
	err := r.db.QueryRow(query, arg).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MySQLUserRepository) Count() (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
