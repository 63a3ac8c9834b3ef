package dto

// LoginRequest carries the posted login form.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// AdminInfo is the authenticated identity echoed to the client.
type AdminInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expiresIn"`
	User      AdminInfo `json:"user"`
}
