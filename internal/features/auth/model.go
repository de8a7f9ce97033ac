package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user in the system
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	Name              string             `bson:"name" json:"name"`
	GoogleID          string             `bson:"googleId,omitempty" json:"-"`
	FirebaseUID       string             `bson:"firebaseUid,omitempty" json:"-"`
	ProfilePictureURL string             `bson:"profilePictureUrl" json:"profilePictureUrl"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload for email/password registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest carries a Google ID token from the web client
type GoogleAuthRequest struct {
	GoogleIDToken string `json:"googleIdToken" binding:"required"`
}

// FirebaseAuthRequest carries a Firebase ID token from the mobile clients
type FirebaseAuthRequest struct {
	FirebaseIDToken string `json:"firebaseIdToken" binding:"required"`
}

// UpdateProfileRequest is the payload for updating the user profile
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"omitempty,min=2,max=50"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
