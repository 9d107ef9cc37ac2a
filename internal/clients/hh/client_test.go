package hh

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"os"
	"testing"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func getVacancyMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_vacancy.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func getVacanciesMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_vacancies.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_HHClient_GetVacancies_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://api.hh.ru/vacancies?area=1&only_with_salary=true&page=0&"+
			"per_page=5&period=3&salary=90000&schedule=remote&text=QA"
	})).Return(getVacanciesMock())

	client := NewClient()
	client.SetHTTPClient(mockClient)

	params := SearchParameters{
		Text:           "QA",
		AreaID:         "1",
		Page:           0,
		PerPage:        5,
		OnlyWithSalary: true,
		Salary:         90000,
		Remote:         true,
		Period:         3,
	}
	page, err := client.GetVacancies(params)
	assert.NoError(err)

	assert.Equal(8, page.Pages)
	assert.True(len(page.Items) == 2)
	assert.Equal(page.Items[0].ID, "93353083")
	assert.Equal(page.Items[0].Name, "QA Engineer (Junior)")
	assert.Equal(page.Items[0].Employer.Name, "Т-Банк")
	assert.Equal(page.Items[0].Area.Name, "Москва")
	assert.Equal(*page.Items[0].Salary.From, 90000)
	assert.Equal(page.Items[1].ID, "93410215")
	assert.Nil(page.Items[1].Salary)
}

func Test_HHClient_GetVacancy_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)
	vacancyID := "93353083"

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://api.hh.ru/vacancies/"+vacancyID
	})).Return(getVacancyMock())

	client := NewClient()
	client.SetHTTPClient(mockClient)

	vacancy, err := client.GetVacancy(vacancyID)
	assert.NoError(err)
	assert.Equal(vacancy.ID, vacancyID)
	assert.Equal(vacancy.Experience.Name, "От 1 года до 3 лет")
	assert.Equal(vacancy.Employment.Name, "Полная занятость")
	assert.NotEmpty(vacancy.Description)
}

func Test_HHClient_GetVacancies_ShouldRejectInvalidParameters(t *testing.T) {

	client := NewClient()

	_, err := client.GetVacancies(SearchParameters{Text: "QA", PerPage: 5})
	assert.Error(t, err)

	_, err = client.GetVacancies(SearchParameters{AreaID: "1", PerPage: 5, Period: 7})
	assert.Error(t, err)
}

func Test_AreaIDByCity(t *testing.T) {

	id, ok := AreaIDByCity("Москва")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	_, ok = AreaIDByCity("Урюпинск")
	assert.False(t, ok)

	assert.Len(t, SupportedCities(), 15)
}
