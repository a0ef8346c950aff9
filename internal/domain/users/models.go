package users

// User is an auction participant. The name is the primary key; there is no
// surrogate id and a user is immutable once created.
type User struct {
	Name string `json:"name" db:"name"`
}
