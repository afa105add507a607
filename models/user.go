package models

// User is a registered wishlist owner. Users are immutable once created.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" gorm:"size:64"`
	LastName     string `json:"last_name" gorm:"size:64"`
	Email        string `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Serialize returns the user without its password hash
func (u User) Serialize() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// SerializeUsers serializes a list of users, never returning nil
func SerializeUsers(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Serialize())
	}
	return out
}
