package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Claims are the JWT claims issued by the auth collaborator. This service
// only verifies them; user management lives elsewhere.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

func jwtSecretKey() []byte {
	return []byte(os.Getenv("JWT_SECRET_KEY"))
}
