package models

// User is the full profile record as returned by the remote API.
// The backend assigns Mongo-style string ids.
type User struct {
	ID          string       `json:"_id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Headline    string       `json:"headline"`
	Bio         string       `json:"bio"`
	Location    string       `json:"location"`
	Connections int          `json:"connections"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
}

type Experience struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
	Location  string `json:"location"`
}

type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear string `json:"startYear"`
	EndYear   string `json:"endYear"`
}
