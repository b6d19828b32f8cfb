package responses

type Appointment struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	CreatorID    string              `json:"creatorId"`
	GroupIDs     []string            `json:"groups,omitempty"`
	StartingDate string              `json:"startingDate"`
	EndingDate   string              `json:"endingDate,omitempty"`
	StartingTime string              `json:"startingTime,omitempty"`
	EndingTime   string              `json:"endingTime,omitempty"`
	Status       string              `json:"status"`
	Attendance   []string            `json:"attendance"`
	AcceptedBy   []string            `json:"acceptedBy"`
	Rating       []RatingLedgerEntry `json:"rating,omitempty"`
}

type RatingLedgerEntry struct {
	RatedBy  string           `json:"ratedBy"`
	HasRated bool             `json:"hasRated"`
	RatedAt  string           `json:"ratedAt,omitempty"`
	Users    []RatedUserEntry `json:"users"`
}

type RatedUserEntry struct {
	RatedUser              string   `json:"ratedUser"`
	CumulativeRatingPoints int      `json:"cumulativeRatingPoints"`
	Comment                string   `json:"comment,omitempty"`
	Reviews                []Review `json:"reviews"`
}

type Review struct {
	Title  string `json:"title"`
	Points int    `json:"points"`
}
