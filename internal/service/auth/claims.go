package auth

import "github.com/golang-jwt/jwt/v5"

const issuer = "smc-barberbooking"

// Claims JWT claims сессии администратора
type Claims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
