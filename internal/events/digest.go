package events

import "github.com/mkravets/hh-assistant/internal/domain/models"

var DigestReadyTopic = "DigestReadyEvent"

// DigestReady is published when the daily broadcast has fresh vacancies
// for a user.
type DigestReady struct {
	UserID    int64
	Vacancies []models.Vacancy
}
