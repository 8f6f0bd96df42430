// Package models defines the persisted data types. The JSON tags are the
// storage contract for the users/rides/currentUser keys; changing them
// breaks existing stores.
package models

// User is an account record. Passwords are stored as entered: this is a
// demo, credential security is out of scope.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt string `json:"createdAt"`
}
