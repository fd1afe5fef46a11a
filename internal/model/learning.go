package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Level progress states
const (
	ProgressStatusLocked    = "locked"
	ProgressStatusActive    = "active"
	ProgressStatusCompleted = "completed"
)

type Level struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	Description       *string   `gorm:"column:description"`
	OrderIndex        int       `gorm:"column:order_index;not null;index"`
	UnlockRequirement int       `gorm:"column:unlock_requirement;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (Level) TableName() string {
	return "levels"
}

func (l *Level) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type UserLevelProgress struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID               uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_level"`
	LevelID              uuid.UUID  `gorm:"column:level_id;type:uuid;not null;uniqueIndex:idx_user_level"`
	Status               string     `gorm:"column:status;not null;default:'locked'"`
	Score                int        `gorm:"column:score;not null;default:0"`
	Stars                int        `gorm:"column:stars;not null;default:0"`
	CompletionPercentage int        `gorm:"column:completion_percentage;not null;default:0"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
}

func (UserLevelProgress) TableName() string {
	return "user_level_progress"
}

func (p *UserLevelProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type DailyTrivia struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Title        string     `gorm:"column:title;not null"`
	Description  *string    `gorm:"column:description"`
	ImageURL     *string    `gorm:"column:image_url"`
	Location     *string    `gorm:"column:location"`
	Region       *string    `gorm:"column:region"`
	FeaturedDate *time.Time `gorm:"column:featured_date;type:date;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (DailyTrivia) TableName() string {
	return "daily_trivia"
}

func (t *DailyTrivia) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Mistake categories and mastery levels
const (
	MistakeCategoryPhysical = "physical"
	MistakeCategoryHuman    = "human"
	MistakeCategoryRegional = "regional"

	MasteryLow      = "low"
	MasteryMedium   = "medium"
	MasteryCritical = "critical"
)

type Mistake struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Title        string    `gorm:"column:title;not null"`
	Question     *string   `gorm:"column:question"`
	Category     string    `gorm:"column:category;not null;default:'physical'"`
	MasteryLevel string    `gorm:"column:mastery_level;not null;default:'low'"`
	ImageURL     *string   `gorm:"column:image_url"`
	AddedAt      time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (Mistake) TableName() string {
	return "mistakes"
}

func (m *Mistake) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// GeoFeature describes a geographic feature shown in the explorer. Stats is a
// free-form JSON document (height, depth, area and similar per-feature facts).
type GeoFeature struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name        string         `gorm:"column:name;not null;index"`
	Description *string        `gorm:"column:description"`
	FeatureType *string        `gorm:"column:feature_type;index"`
	Latitude    *float64       `gorm:"column:latitude"`
	Longitude   *float64       `gorm:"column:longitude"`
	Region      *string        `gorm:"column:region"`
	ImageURL    *string        `gorm:"column:image_url"`
	Stats       datatypes.JSON `gorm:"column:stats"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (GeoFeature) TableName() string {
	return "geographic_features"
}

func (g *GeoFeature) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// AR landform types
const (
	LandformBasin  = "basin"
	LandformPeak   = "peak"
	LandformValley = "valley"
	LandformCliff  = "cliff"
)

type ARLandform struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null;index"`
	Description *string   `gorm:"column:description"`
	Type        string    `gorm:"column:type;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	Elevation   *int      `gorm:"column:elevation"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (ARLandform) TableName() string {
	return "ar_landforms"
}

func (a *ARLandform) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
