package admin

type BootstrapRequest struct {
	Username string `validate:"required,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
