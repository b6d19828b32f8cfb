package responses

type Login struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

type Register struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
