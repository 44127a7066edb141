package database

import (
	"childwell_backend/internal/config"
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

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
		&model.Child{},
		&model.AssessmentQuestion{},
		&model.AssessmentResult{},
		&model.EducationRecord{},
		&model.StudySuggestion{},
		&model.NutritionRecord{},
		&model.NutritionRecommendation{},
		&model.Course{},
		&model.CourseMaterial{},
		&model.CourseEnrollment{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedQuestionBank(db)
	seedCourses(db)

	return db, nil
}

// seedQuestionBank 默认题库：题库为空时写入一套带维度权重的基础题目
func seedQuestionBank(db *gorm.DB) {
	var count int64
	db.Model(&model.AssessmentQuestion{}).Count(&count)
	if count > 0 {
		return
	}

	weightages := func(ws ...insight.IssueWeightage) json.RawMessage {
		raw, _ := json.Marshal(ws)
		return raw
	}

	ratingMin, ratingMax := 1.0, 5.0
	defaults := []model.AssessmentQuestion{
		{
			Text:            "How often does the child seem worried or fearful without a clear reason?",
			IssueWeightages: weightages(insight.IssueWeightage{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 80}),
			RatingMin:       &ratingMin, RatingMax: &ratingMax, Order: 1, Active: true,
		},
		{
			Text: "How often does the child avoid activities they used to enjoy?",
			IssueWeightages: weightages(
				insight.IssueWeightage{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 40},
				insight.IssueWeightage{IssueID: "depression", IssueName: "Depression", Weightage: 60},
			),
			RatingMin: &ratingMin, RatingMax: &ratingMax, Order: 2, Active: true,
		},
		{
			Text:            "How often does the child appear sad or tearful?",
			IssueWeightages: weightages(insight.IssueWeightage{IssueID: "depression", IssueName: "Depression", Weightage: 80}),
			RatingMin:       &ratingMin, RatingMax: &ratingMax, Order: 3, Active: true,
		},
		{
			Text:            "How often does the child struggle to stay focused on one task?",
			IssueWeightages: weightages(insight.IssueWeightage{IssueID: "attention", IssueName: "Attention Difficulties", Weightage: 85}),
			RatingMin:       &ratingMin, RatingMax: &ratingMax, Order: 4, Active: true,
		},
		{
			Text: "How often does the child prefer to be alone rather than with peers?",
			IssueWeightages: weightages(
				insight.IssueWeightage{IssueID: "social_withdrawal", IssueName: "Social Withdrawal", Weightage: 75},
				insight.IssueWeightage{IssueID: "depression", IssueName: "Depression", Weightage: 25},
			),
			RatingMin: &ratingMin, RatingMax: &ratingMax, Order: 5, Active: true,
		},
		{
			Text:            "How often does the child lose their temper or act aggressively?",
			IssueWeightages: weightages(insight.IssueWeightage{IssueID: "aggression", IssueName: "Aggression", Weightage: 85}),
			RatingMin:       &ratingMin, RatingMax: &ratingMax, Order: 6, Active: true,
		},
	}

	for _, q := range defaults {
		db.Create(&q)
	}
}

// seedCourses 与阈值目录中的 recommendedCourseId 对应的默认课程
func seedCourses(db *gorm.DB) {
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Course{
		{Code: "course-calm-foundations", Title: "Calm Foundations", Description: "Breathing and relaxation routines for anxious children", Category: "psychological", IsPublished: true},
		{Code: "course-mood-matters", Title: "Mood Matters", Description: "Mood awareness activities for families", Category: "psychological", IsPublished: true},
		{Code: "course-focus-skills", Title: "Focus Skills", Description: "Attention-building games and study structure", Category: "psychological", IsPublished: true},
		{Code: "course-social-confidence", Title: "Social Confidence", Description: "Gradual social exposure exercises", Category: "psychological", IsPublished: true},
		{Code: "course-emotion-regulation", Title: "Emotion Regulation", Description: "De-escalation and self-control practice", Category: "psychological", IsPublished: true},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
