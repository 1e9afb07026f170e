package auth

import "golang.org/x/crypto/bcrypt"

// HashText returns a bcrypt hash of any secret text. The same helper covers
// staff passwords and student date-of-birth challenges.
func HashText(text string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyHash reports whether text matches a bcrypt hash. An empty stored
// hash never verifies.
func VerifyHash(text, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(text)) == nil
}
