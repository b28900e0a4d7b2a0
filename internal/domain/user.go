package domain

import "time"

// UserCategory represents the service category a user registered under.
type UserCategory string

const (
	UserCategoryElderly       UserCategory = "elderly"
	UserCategoryAccessibility UserCategory = "accessibility"
)

// ValidUserCategory reports whether the given category is a known value.
func ValidUserCategory(c UserCategory) bool {
	return c == UserCategoryElderly || c == UserCategoryAccessibility
}

// User represents a rider in the system. Identity and category are fixed at
// registration; only the contact fields (phone, address) may change afterwards.
type User struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Category  UserCategory
	CreatedAt time.Time
}
