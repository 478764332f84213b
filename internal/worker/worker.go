package worker

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/seed"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// StartNotificationWorker builds the notification service and subscribes it
// to ticket and dictionary events.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	notifications := service.NewNotificationService(dispatcher, logger, cfg)
	notifications.RegisterHandlers()
	return notifications
}

// SeedReport counts what a seed run inserted.
type SeedReport struct {
	Departments int
	Emotional   int
	Technical   int
}

// ApplySeed registers seed departments and words that are not present yet.
// Rerunning it against the same stores inserts nothing.
func ApplySeed(ctx context.Context, file *seed.File, departments *service.DepartmentService, dictionaries *service.DictionaryService, logger *zap.Logger) (SeedReport, error) {
	var report SeedReport
	if file == nil {
		return report, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, d := range file.Departments {
		_, err := departments.Create(ctx, d.Name, d.Description, d.Contact)
		if err != nil {
			var de *apperrors.DomainError
			if errors.As(err, &de) && de.Code == "CONFLICT" {
				continue
			}
			return report, err
		}
		report.Departments++
	}

	var err error
	if report.Emotional, err = dictionaries.Seed(ctx, classifier.KindEmotional, file.Entries(classifier.KindEmotional)); err != nil {
		return report, err
	}
	if report.Technical, err = dictionaries.Seed(ctx, classifier.KindTechnical, file.Entries(classifier.KindTechnical)); err != nil {
		return report, err
	}

	logger.Info("seed applied",
		zap.Int("departments", report.Departments),
		zap.Int("emotional_words", report.Emotional),
		zap.Int("technical_words", report.Technical))
	return report, nil
}
