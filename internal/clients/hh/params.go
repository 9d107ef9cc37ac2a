package hh

import (
	"fmt"
	"net/url"
	"strconv"
)

type SearchParameters struct {
	Text                string
	AreaID              string
	Page                int
	PerPage             int
	OnlyWithSalary      bool
	Salary              int
	Remote              bool
	Period              int
	Employment          string
	Experience          string
	OnlyDirectEmployers bool
}

func (s SearchParameters) Validate() error {

	if s.AreaID == "" {
		return fmt.Errorf("area id is required")
	}

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	if s.Period != 0 && (s.Period < 1 || s.Period > 3) {
		return fmt.Errorf("period must be between 1 and 3 days")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("text", s.Text)
	params.Add("area", s.AreaID)
	params.Add("per_page", strconv.Itoa(s.PerPage))
	params.Add("page", strconv.Itoa(s.Page))
	params.Add("only_with_salary", strconv.FormatBool(s.OnlyWithSalary))

	if s.Salary != 0 {
		params.Add("salary", strconv.Itoa(s.Salary))
	}

	if s.Remote {
		params.Add("schedule", "remote")
	}

	if s.Period != 0 {
		params.Add("period", strconv.Itoa(s.Period))
	}

	if s.Employment != "" {
		params.Add("employment", s.Employment)
	}

	if s.Experience != "" {
		params.Add("experience", s.Experience)
	}

	if s.OnlyDirectEmployers {
		params.Add("employer_type", "direct")
	}

	return params
}
