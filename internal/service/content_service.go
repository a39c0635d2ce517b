package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/internal/util"
)

// ContentService manages courses and their lessons, including media
// handling for video lessons.
type ContentService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewContentService(courseRepo *repository.CourseRepository, storage *StorageService) *ContentService {
	return &ContentService{
		CourseRepo: courseRepo,
		Storage:    storage,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject" binding:"required"`
	GradeBand   string `json:"gradeBand"`
	IsPublished *bool  `json:"isPublished"`
}

type LessonRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Type        model.LessonType `json:"type" binding:"required"`
	URL         string           `json:"url"`
	SortOrder   int              `json:"sortOrder"`
	IsPublished *bool            `json:"isPublished"`
}

func (s *ContentService) CreateCourse(req *CourseRequest, creatorID uint) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		GradeBand:   req.GradeBand,
		CreatorID:   creatorID,
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *ContentService) ListCourses(subject, gradeBand string, publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.List(subject, gradeBand, publishedOnly, page, limit)
}

func (s *ContentService) UpdateCourse(id uint, req *CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Subject = req.Subject
	course.GradeBand = req.GradeBand
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) DeleteCourse(id uint) error {
	if _, err := s.CourseRepo.FindByID(id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(id)
}

func (s *ContentService) CreateLesson(courseID uint, req *LessonRequest, uploaderID uint) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		URL:         req.URL,
		SortOrder:   req.SortOrder,
		UploaderID:  uploaderID,
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) UpdateLesson(id uint, req *LessonRequest) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(id)
	if err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.Type = req.Type
	if req.URL != "" {
		lesson.URL = req.URL
	}
	lesson.SortOrder = req.SortOrder
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := s.CourseRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *ContentService) DeleteLesson(id uint) error {
	if _, err := s.CourseRepo.FindLessonByID(id); err != nil {
		return err
	}
	return s.CourseRepo.DeleteLesson(id)
}

// UploadLessonVideo stores an uploaded video, probes its metadata, renders
// a thumbnail and creates the lesson row in one go.
func (s *ContentService) UploadLessonVideo(ctx context.Context, courseID uint, header *multipart.FileHeader, title string, uploaderID uint) (*model.Lesson, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video format %s", ext)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lesson-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("lessons/%d/%d%s", courseID, time.Now().UnixNano(), ext)
	url, err := s.Storage.UploadFile(ctx, base, tmpPath, util.MimeVideo+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	thumbnail := ""
	thumbPath := tmpPath + ".jpg"
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
		defer os.Remove(thumbPath)
		thumbName := strings.TrimSuffix(base, ext) + ".jpg"
		if thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg"); err == nil {
			thumbnail = thumbURL
		}
	}

	lesson := &model.Lesson{
		CourseID:   courseID,
		Title:      title,
		Type:       model.LessonVideo,
		URL:        url,
		Duration:   info.Duration,
		Format:     info.Format,
		Thumbnail:  thumbnail,
		UploaderID: uploaderID,
	}
	if err := s.CourseRepo.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}
