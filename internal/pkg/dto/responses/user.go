package responses

type UserProfile struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	Gender       string   `json:"gender"`
	Role         string   `json:"role"`
	ProfilePic   string   `json:"profilePic,omitempty"`
	Appointments []string `json:"appointments"`
	Groups       []string `json:"groups"`
}
