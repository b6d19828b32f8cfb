package requests

type CreateAppointment struct {
	Title        string   `json:"title" validate:"required,min=5"`
	StartingDate string   `json:"startingDate" validate:"required,datetime=2006-01-02"`
	EndingDate   string   `json:"endingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartingTime string   `json:"startingTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndingTime   string   `json:"endingTime,omitempty" validate:"omitempty,datetime=15:04"`
	Groups       []string `json:"groups,omitempty"`
	Attendance   []string `json:"attendance,omitempty"`
}

type UpdateAppointment struct {
	Title        string `json:"title,omitempty" validate:"omitempty,min=5"`
	StartingDate string `json:"startingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndingDate   string `json:"endingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartingTime string `json:"startingTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndingTime   string `json:"endingTime,omitempty" validate:"omitempty,datetime=15:04"`
}

type ChangeAppointmentStatus struct {
	Status string `json:"status" validate:"required,oneof=pending rejected inactive active expired completed"`
}

type SubmitRating struct {
	Comment string   `json:"comment,omitempty" validate:"omitempty,max=500"`
	Reviews []Review `json:"reviews" validate:"required,min=1,dive"`
}

type Review struct {
	Title  string `json:"title" validate:"required"`
	Points int    `json:"points" validate:"gte=0,lte=5"`
}
