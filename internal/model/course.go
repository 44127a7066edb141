package model

import "time"

// Course 推荐课程，Code 与阈值目录中的 recommendedCourseId 对应
// swagger:model Course
type Course struct {
	BaseModel
	Code        string     `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:50" json:"category"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseMaterial 课程材料（视频/文档），文件经存储服务上传
// swagger:model CourseMaterial
type CourseMaterial struct {
	UUIDBase
	CourseID    uint    `gorm:"index;not null" json:"courseId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Type        string  `gorm:"size:20;not null" json:"type"` // video / document
	URL         string  `gorm:"size:500" json:"url"`
	DurationSec float64 `gorm:"default:0" json:"durationSec"` // 视频时长，上传时探测
	SizeBytes   int64   `gorm:"default:0" json:"sizeBytes"`
	Order       int     `gorm:"default:0" json:"order"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}

// CourseEnrollment 儿童的课程报名与进度
// swagger:model CourseEnrollment
type CourseEnrollment struct {
	BaseModel
	CourseID    uint       `gorm:"uniqueIndex:idx_course_child;not null" json:"courseId"`
	ChildID     uint       `gorm:"uniqueIndex:idx_course_child;not null" json:"childId"`
	Progress    float64    `gorm:"default:0" json:"progress"` // 0-100
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
