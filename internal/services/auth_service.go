package services

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// AuthService checks dashboard credentials against one configured admin.
type AuthService struct {
	User string
	Hash []byte
}

func NewAuthService(user, bcryptHash string) *AuthService {
	return &AuthService{User: user, Hash: []byte(bcryptHash)}
}

func (s *AuthService) Enabled() bool { return len(s.Hash) > 0 }

func (s *AuthService) Check(user, password string) bool {
	if !s.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.User)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.Hash, []byte(password)) == nil
	return userOK && passOK
}
