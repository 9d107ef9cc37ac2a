package services

import (
	"github.com/mkravets/hh-assistant/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"strconv"
	"testing"
)

func vacanciesForTest(count int) []models.Vacancy {
	vacancies := make([]models.Vacancy, 0, count)
	for i := 0; i < count; i++ {
		vacancies = append(vacancies, models.Vacancy{ID: strconv.Itoa(i), Name: "QA " + strconv.Itoa(i)})
	}
	return vacancies
}

func Test_Paging_Start_ShouldReturnFirstPage(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()

	page, err := sessions.Start(1, vacanciesForTest(12))

	assert.NoError(err)
	assert.Equal(1, page.Number)
	assert.Equal(3, page.Total)
	assert.Len(page.Vacancies, SearchPageSize)
	assert.Equal("0", page.Vacancies[0].ID)
}

func Test_Paging_LastPage_MayBeShort(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)

	page, err := sessions.GoToPage(1, 3)

	assert.NoError(err)
	assert.Equal(3, page.Number)
	assert.Len(page.Vacancies, 2)
	assert.Equal("10", page.Vacancies[0].ID)
	assert.Equal("11", page.Vacancies[1].ID)
}

func Test_Paging_RepeatedRequest_ShouldReturnSamePage(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)

	first, err := sessions.GoToPage(1, 2)
	assert.NoError(err)
	second, err := sessions.GoToPage(1, 2)
	assert.NoError(err)

	assert.Equal(first, second)
}

func Test_Paging_OutOfRangePage_ShouldFail(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)

	_, err = sessions.GoToPage(1, 0)
	assert.ErrorIs(err, ErrPageOutOfRange)

	_, err = sessions.GoToPage(1, 4)
	assert.ErrorIs(err, ErrPageOutOfRange)
}

func Test_Paging_WithoutSession_ShouldBeStale(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()

	_, err := sessions.GoToPage(1, 1)
	assert.ErrorIs(err, ErrStaleSession)

	_, found := sessions.FindVacancy(1, "0")
	assert.False(found)
}

func Test_Paging_EmptyResultSet_ShouldBeRejected(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()

	_, err := sessions.Start(1, nil)
	assert.Error(err)

	_, err = sessions.GoToPage(1, 1)
	assert.ErrorIs(err, ErrStaleSession)
}

func Test_Paging_Restart_ShouldReplaceSnapshot(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)
	_, err = sessions.GoToPage(1, 3)
	assert.NoError(err)

	page, err := sessions.Start(1, vacanciesForTest(3))

	assert.NoError(err)
	assert.Equal(1, page.Number)
	assert.Equal(1, page.Total)
	assert.Len(page.Vacancies, 3)
}

func Test_Paging_SessionsAreIndependentPerUser(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)
	_, err = sessions.Start(2, vacanciesForTest(3))
	assert.NoError(err)

	page, err := sessions.GoToPage(1, 3)
	assert.NoError(err)
	assert.Equal(3, page.Number)

	_, err = sessions.GoToPage(2, 3)
	assert.ErrorIs(err, ErrPageOutOfRange)
}

func Test_FindVacancy_ShouldSearchWholeSnapshot(t *testing.T) {

	assert := assert.New(t)

	sessions := NewPagingSessions()
	_, err := sessions.Start(1, vacanciesForTest(12))
	assert.NoError(err)

	vacancy, found := sessions.FindVacancy(1, "11")
	assert.True(found)
	assert.Equal("QA 11", vacancy.Name)

	_, found = sessions.FindVacancy(1, "99")
	assert.False(found)
}
