package services

import (
	"context"
	"github.com/mkravets/hh-assistant/internal/clients/hh"
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

type mockUsers struct {
	users map[int64]*models.User
}

func (m *mockUsers) GetByID(_ context.Context, userID int64) (*models.User, error) {
	return m.users[userID], nil
}

type mockLLMSettings struct {
	settings map[int64]*models.LLMSettings
}

func (m *mockLLMSettings) GetByUser(_ context.Context, userID int64) (*models.LLMSettings, error) {
	return m.settings[userID], nil
}

type mockDetailClient struct {
	detail hh.VacancyDetail
	err    error
	calls  int
}

func (m *mockDetailClient) GetVacancy(_ string) (hh.VacancyDetail, error) {
	m.calls++
	return m.detail, m.err
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GenerateResponse(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func testUser(userID int64) *models.User {
	return &models.User{
		TelegramID:      userID,
		FullName:        "Иванов Иван",
		City:            "Москва",
		DesiredPosition: "QA Engineer",
		Skills:          "Python, SQL",
		Resume:          "3 года в тестировании",
	}
}

func testVacancy() models.Vacancy {
	from := 90000
	return models.Vacancy{
		ID:       "1",
		Name:     "QA Engineer",
		Employer: "Рога и копыта",
		Area:     "Москва",
		Salary:   &models.Salary{From: &from, Currency: "RUR"},
		Url:      "https://hh.ru/vacancy/1",
	}
}

func Test_Generator_WhenNoProfile_ShouldFail(t *testing.T) {

	assert := assert.New(t)

	provider := &mockProvider{}
	generator := NewGenerator(&mockUsers{}, &mockLLMSettings{}, &mockDetailClient{}, provider)

	_, err := generator.Resume(context.Background(), 1, testVacancy())
	assert.ErrorIs(err, ErrProfileNotFound)

	_, err = generator.CoverLetter(context.Background(), 1, testVacancy())
	assert.ErrorIs(err, ErrProfileNotFound)

	provider.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything)
}

func Test_Generator_Resume_ShouldUseProfileAndVacancy(t *testing.T) {

	assert := assert.New(t)

	provider := &mockProvider{}
	provider.On("GenerateResponse", mock.Anything, mock.Anything).Return("готовое резюме", nil)

	users := &mockUsers{users: map[int64]*models.User{1: testUser(1)}}
	generator := NewGenerator(users, &mockLLMSettings{}, &mockDetailClient{}, provider)

	text, err := generator.Resume(context.Background(), 1, testVacancy())

	assert.NoError(err)
	assert.Equal("готовое резюме", text)

	prompt := provider.Calls[0].Arguments.String(1)
	assert.Contains(prompt, "QA Engineer")
	assert.Contains(prompt, "Рога и копыта")
	assert.Contains(prompt, "Иванов Иван")
	assert.Contains(prompt, "Python, SQL")
	assert.Contains(prompt, "90000")
}

func Test_Generator_WhenDetailUnavailable_ShouldStillGenerate(t *testing.T) {

	assert := assert.New(t)

	provider := &mockProvider{}
	provider.On("GenerateResponse", mock.Anything, mock.Anything).Return("письмо", nil)

	users := &mockUsers{users: map[int64]*models.User{1: testUser(1)}}
	details := &mockDetailClient{err: errors.New("hh is down")}
	generator := NewGenerator(users, &mockLLMSettings{}, details, provider)

	text, err := generator.CoverLetter(context.Background(), 1, testVacancy())

	assert.NoError(err)
	assert.Equal("письмо", text)
}

func Test_Generator_ShouldCacheVacancyDetails(t *testing.T) {

	assert := assert.New(t)

	provider := &mockProvider{}
	provider.On("GenerateResponse", mock.Anything, mock.Anything).Return("текст", nil)

	users := &mockUsers{users: map[int64]*models.User{1: testUser(1)}}
	details := &mockDetailClient{detail: hh.VacancyDetail{Description: "описание"}}
	generator := NewGenerator(users, &mockLLMSettings{}, details, provider)

	_, err := generator.Resume(context.Background(), 1, testVacancy())
	assert.NoError(err)
	_, err = generator.CoverLetter(context.Background(), 1, testVacancy())
	assert.NoError(err)

	assert.Equal(1, details.calls)
}

func Test_Generator_WhenDefaultProviderFails_ShouldPropagate(t *testing.T) {

	assert := assert.New(t)

	provider := &mockProvider{}
	provider.On("GenerateResponse", mock.Anything, mock.Anything).Return("", errors.New("llm is down"))

	users := &mockUsers{users: map[int64]*models.User{1: testUser(1)}}
	generator := NewGenerator(users, &mockLLMSettings{}, &mockDetailClient{}, provider)

	_, err := generator.Resume(context.Background(), 1, testVacancy())

	assert.Error(err)
}
