package hh

type Employer struct {
	Name string `json:"name"`
}

type Area struct {
	Name string `json:"name"`
}

type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

type Named struct {
	Name string `json:"name"`
}

type Vacancy struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Employer Employer `json:"employer"`
	Area     Area     `json:"area"`
	Salary   *Salary  `json:"salary"`
	Url      string   `json:"alternate_url"`
}

type VacancyDetail struct {
	Vacancy
	Description string `json:"description"`
	Experience  Named  `json:"experience"`
	Employment  Named  `json:"employment"`
}

// SearchPage is one page of a paginated search response.
type SearchPage struct {
	Items []Vacancy `json:"items"`
	Pages int       `json:"pages"`
}
