package service

import (
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/pkg/logger"

	"go.uber.org/zap"
)

// ConsentService manages analytics consent and the data-subject requests
// built on top of it: export and erasure.
type ConsentService struct {
	ConsentRepo   *repository.ConsentRepository
	AnalyticsRepo *repository.AnalyticsRepository
	ProgressRepo  *repository.ProgressRepository
	UserRepo      *repository.UserRepository
}

func NewConsentService(
	consentRepo *repository.ConsentRepository,
	analyticsRepo *repository.AnalyticsRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
) *ConsentService {
	return &ConsentService{
		ConsentRepo:   consentRepo,
		AnalyticsRepo: analyticsRepo,
		ProgressRepo:  progressRepo,
		UserRepo:      userRepo,
	}
}

type ConsentRequest struct {
	AllowAnalytics       bool `json:"allowAnalytics"`
	AllowPersonalization bool `json:"allowPersonalization"`
}

// DataExport bundles everything stored about one student.
type DataExport struct {
	ExportedAt time.Time                `json:"exportedAt"`
	User       *model.User              `json:"user"`
	Consent    *model.ConsentRecord     `json:"consent"`
	Progress   *model.StudentProgress   `json:"progress"`
	Events     []model.InteractionEvent `json:"events"`
}

func (s *ConsentService) Get(studentID uint) (*model.ConsentRecord, error) {
	return s.ConsentRepo.FindByStudentID(studentID)
}

func (s *ConsentService) Update(studentID uint, req *ConsentRequest) (*model.ConsentRecord, error) {
	rec := &model.ConsentRecord{
		StudentID:            studentID,
		AllowAnalytics:       req.AllowAnalytics,
		AllowPersonalization: req.AllowPersonalization,
	}
	if err := s.ConsentRepo.Upsert(rec); err != nil {
		return nil, err
	}

	// Withdrawing analytics consent also drops everything collected so far.
	if !req.AllowAnalytics {
		if err := s.AnalyticsRepo.DeleteByStudent(studentID); err != nil {
			logger.Log.Error("purge after consent withdrawal failed",
				zap.Uint("studentId", studentID), zap.Error(err))
		}
	}
	return rec, nil
}

func (s *ConsentService) Export(studentID uint) (*DataExport, error) {
	user, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	consent, err := s.ConsentRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	p, err := s.ProgressRepo.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	events, err := s.AnalyticsRepo.FindByStudent(studentID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	return &DataExport{
		ExportedAt: time.Now(),
		User:       user,
		Consent:    consent,
		Progress:   p,
		Events:     events,
	}, nil
}

// Erase removes the student's analytics events, progress aggregate and
// consent record. The account row itself stays; deleting it is an admin
// operation on the user resource.
func (s *ConsentService) Erase(studentID uint) error {
	if err := s.AnalyticsRepo.DeleteByStudent(studentID); err != nil {
		return err
	}
	if err := s.ProgressRepo.Delete(studentID); err != nil {
		return err
	}
	return s.ConsentRepo.Delete(studentID)
}
