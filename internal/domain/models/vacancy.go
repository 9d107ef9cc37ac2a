package models

// Salary bounds as returned by the provider. Either bound may be absent.
type Salary struct {
	From     *int
	To       *int
	Currency string
}

// Vacancy is the canonical search result record. Immutable once fetched.
type Vacancy struct {
	ID       string
	Name     string
	Employer string
	Area     string
	Salary   *Salary
	Url      string
}

// VacancyDetail carries the long-form fields loaded on demand when a
// single vacancy is acted on.
type VacancyDetail struct {
	Description string
	Experience  string
	Employment  string
}

// VacancyCard is the flat shape consumed by generation prompts and
// presentation.
type VacancyCard struct {
	ID          string
	Title       string
	Company     string
	City        string
	Url         string
	Description string
	SalaryFrom  *int
	SalaryTo    *int
	Currency    string
	Experience  string
	Employment  string
}

func NewVacancyCard(vacancy Vacancy, detail *VacancyDetail) VacancyCard {

	card := VacancyCard{
		ID:      vacancy.ID,
		Title:   vacancy.Name,
		Company: vacancy.Employer,
		City:    vacancy.Area,
		Url:     vacancy.Url,
	}

	if vacancy.Salary != nil {
		card.SalaryFrom = vacancy.Salary.From
		card.SalaryTo = vacancy.Salary.To
		card.Currency = vacancy.Salary.Currency
	}

	if detail != nil {
		card.Description = detail.Description
		card.Experience = detail.Experience
		card.Employment = detail.Employment
	}

	return card
}
