package requests

type RegisterUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
	Name     string `json:"name" validate:"required,min=2,max=60"`
	Phone    string `json:"phone,omitempty"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user admin super-admin"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
