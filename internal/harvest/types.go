package harvest

// Ref is an id/name pair embedded in a time entry.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ClientRecord is a billing client as returned by the /clients endpoint.
type ClientRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ClientID int64  `json:"client_id"`
}

type TimeEntry struct {
	ID        int64   `json:"id"`
	SpentDate string  `json:"spent_date"`
	User      Ref     `json:"user"`
	Project   Ref     `json:"project"`
	Client    Ref     `json:"client"`
	Task      Ref     `json:"task"`
	Notes     string  `json:"notes"`
	Hours     float64 `json:"hours"`
	Billable  bool    `json:"billable"`
}
