package database

import (
	"fmt"
	"log"

	"learning_pulse_backend/internal/config"
	"learning_pulse_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Activity{},
		&model.Assessment{},
		&model.LearningPath{},
		&model.PathNode{},
		&model.StudentProgress{},
		&model.CompletedActivity{},
		&model.AssessmentResult{},
		&model.PathEnrollment{},
		&model.Badge{},
		&model.LearningGoal{},
		&model.InteractionEvent{},
		&model.ConsentRecord{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
