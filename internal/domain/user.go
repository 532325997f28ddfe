package domain

type User struct {
	Id             int64  `db:"id"`
	Email          string `db:"email"`
	HashedPassword string `db:"hashed_password"`
	IsAdmin        bool   `db:"is_admin"`
}
