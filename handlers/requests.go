package handlers

type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Remember  bool   `json:"remember"`
	ProjectID string `json:"project_id"`
}

type SessionResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ProjectID string `json:"project_id"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type SelectProjectRequest struct {
	ProjectID string `json:"project_id"`
}

type ProjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
