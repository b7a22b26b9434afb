package models

// Profile is the single personal profile shown on the portfolio
type Profile struct {
	BaseEntity
	Name            string  `json:"name" db:"name" gorm:"type:varchar(200);not null"`
	Role            string  `json:"role" db:"role" gorm:"type:varchar(200);not null"`
	Location        *string `json:"location,omitempty" db:"location" gorm:"type:varchar(100)"`
	Languages       *string `json:"languages,omitempty" db:"languages" gorm:"type:varchar(200)"`
	Description     *string `json:"description,omitempty" db:"description" gorm:"type:varchar(2000)"`
	AvatarURL       *string `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:varchar(500)"`
	ExperienceYears *string `json:"experienceYears,omitempty" db:"experience_years" gorm:"type:varchar(50)"`
	CoreEngine      *string `json:"coreEngine,omitempty" db:"core_engine" gorm:"type:varchar(200)"`
	Database        *string `json:"database,omitempty" db:"database" gorm:"column:database;type:varchar(200)"`
	Email           *string `json:"email,omitempty" db:"email" gorm:"type:varchar(200)"`
	GitHubURL       *string `json:"gitHubUrl,omitempty" db:"github_url" gorm:"column:github_url;type:varchar(500)"`
	LinkedInURL     *string `json:"linkedInUrl,omitempty" db:"linkedin_url" gorm:"column:linkedin_url;type:varchar(500)"`
	Specialized     *string `json:"specialized,omitempty" db:"specialized" gorm:"type:varchar(200)"`
	Certifications  *string `json:"certifications,omitempty" db:"certifications" gorm:"type:varchar(500)"`
	AboutText       *string `json:"aboutText,omitempty" db:"about_text" gorm:"type:varchar(3000)"`
}
