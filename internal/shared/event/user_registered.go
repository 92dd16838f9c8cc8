// Package event holds the message contracts shared between publishers and
// consumers.
package event

const UserRegisteredDestination string = "user_registered"

type UserRegisteredMessage struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
