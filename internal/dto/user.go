package dto

// LoginRequest defines data for a local password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the data returned upon successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// GoogleCodeExchangeRequest carries the authorization code from the Google sign-in popup.
type GoogleCodeExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// NotificationsRequest pages the caller's notifications.
type NotificationsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
