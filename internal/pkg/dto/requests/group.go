package requests

type CreateGroup struct {
	Name        string   `json:"name" validate:"required,min=2,max=60"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Admin       string   `json:"admin" validate:"required"`
	Members     []string `json:"members,omitempty"`
}

type UpdateGroup struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=60"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	GroupPic    string `json:"groupPic,omitempty"`
}

type ReassignGroupAdmin struct {
	Admin string `json:"admin" validate:"required"`
}

type ChangeGroupMembers struct {
	Members []string `json:"members" validate:"required,min=1"`
}
