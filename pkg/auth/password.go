package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is fixed at 12; hashing only happens on signup and login, never
// on the request hot path.
const hashCost = 12

// HashPassword derives the bcrypt hash stored in the users table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
