package responses

type Group struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	GroupPic     string   `json:"groupPic,omitempty"`
	Admin        string   `json:"admin"`
	Members      []string `json:"members"`
	Appointments []string `json:"appointments"`
}
