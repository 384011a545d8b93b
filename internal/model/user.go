package model

const (
	UserStatusDisabled = 0
	UserStatusEnabled  = 1
)

// User is the identity record. PasswordHash never leaves the server and
// never holds plaintext.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar_url"`
	Bio          string `json:"bio"`
	Status       int    `json:"status"`
	Ctime        int64  `json:"ctime"`
	Mtime        int64  `json:"mtime"`
}
