package model

// LoginRequest represents a login attempt for any user type.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// AuthOutcome is the result of an authentication attempt.
// A failed outcome carries only Success and Message.
type AuthOutcome struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserType Role   `json:"userType,omitempty"`
	UserID   *int64 `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Token    string `json:"token,omitempty"`
}

// AuthFailure builds a failed outcome.
func AuthFailure(msg string) AuthOutcome {
	return AuthOutcome{Success: false, Message: msg}
}

// Identity is the resolved user behind a successful login.
type Identity struct {
	ID          int64
	Role        Role
	DisplayName string
	Email       string
	Phone       string
}
