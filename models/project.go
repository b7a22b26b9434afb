package models

// Project represents a portfolio project together with its case study
type Project struct {
	BaseEntity
	Title        string  `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Category     string  `json:"category" db:"category" gorm:"type:varchar(100);not null;default:''"`
	Description  string  `json:"description" db:"description" gorm:"type:varchar(2000);not null;default:''"`
	Tags         string  `json:"tags" db:"tags" gorm:"type:varchar(500);not null;default:''"`
	ImageURL     *string `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	GitHubURL    *string `json:"gitHubUrl,omitempty" db:"github_url" gorm:"column:github_url;type:text"`
	DemoURL      *string `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:text"`
	Metric1Name  *string `json:"metric1Name,omitempty" db:"metric1_name" gorm:"column:metric1_name;type:text"`
	Metric1Value *string `json:"metric1Value,omitempty" db:"metric1_value" gorm:"column:metric1_value;type:text"`
	Metric2Name  *string `json:"metric2Name,omitempty" db:"metric2_name" gorm:"column:metric2_name;type:text"`
	Metric2Value *string `json:"metric2Value,omitempty" db:"metric2_value" gorm:"column:metric2_value;type:text"`
	Icon         *string `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	DisplayOrder int     `json:"displayOrder" db:"display_order" gorm:"not null;default:0;index"`
	IsActive     bool    `json:"isActive" db:"is_active" gorm:"not null;index"`

	// Case study. TechnicalSolution, TechnicalDecisions and TradeOffs hold
	// JSON-encoded text that is stored and returned verbatim.
	BusinessProblem    *string `json:"businessProblem,omitempty" db:"business_problem" gorm:"type:text"`
	TechnicalSolution  *string `json:"technicalSolution,omitempty" db:"technical_solution" gorm:"type:text"`
	TechnicalDecisions *string `json:"technicalDecisions,omitempty" db:"technical_decisions" gorm:"type:text"`
	TradeOffs          *string `json:"tradeOffs,omitempty" db:"trade_offs" gorm:"type:text"`
	ArchitectureNotes  *string `json:"architectureNotes,omitempty" db:"architecture_notes" gorm:"type:text"`
}
