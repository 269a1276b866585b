package dto

import "github.com/spec-kit/materials-service/internal/domain"

// SignupRequest payload for new users. Field names follow the signup form.
type SignupRequest struct {
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	Username        string          `json:"username"`
	AgreeToTerms    bool            `json:"agreeToTerms"`
	UserType        domain.UserType `json:"userType"`
	Company         string          `json:"company"`
	IAmInterestedIn domain.Interest `json:"iAmInterestedIn"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the profile subset returned on signup. It must never
// carry the password hash.
type UserResponse struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	UserType     domain.UserType `json:"userType,omitempty"`
	AgreeToTerms bool            `json:"agreeToTerms"`
	Company      string          `json:"company,omitempty"`
}

// NewUserResponse maps a domain user to its public subset.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		UserType:     user.UserType,
		AgreeToTerms: user.AgreeToTerms,
		Company:      user.Company,
	}
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

// UpdateProfileRequest replaces the stored wishlist wholesale.
type UpdateProfileRequest struct {
	WishList []string `json:"wishList"`
}

// WishlistAddRequest appends one material reference.
type WishlistAddRequest struct {
	MaterialID string `json:"materialId"`
}
