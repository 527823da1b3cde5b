package transfer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the cookie session payload. The token pair is AES-GCM
// encrypted before it is embedded, the JWT signature alone does not hide it.
type SessionClaims struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	AccessToken  string `json:"at,omitempty"`
	RefreshToken string `json:"rt,omitempty"`
	jwt.RegisteredClaims
}
