package models

type Project struct {
	BaseModel

	UserID             uint   `gorm:"not null;index" json:"userId"`
	ProjectName        string `gorm:"not null" json:"projectName"`
	ProjectDescription string `gorm:"not null" json:"projectDescription"`
	FormOfContract     string `gorm:"not null" json:"formOfContract"`
	OrganizationRole   string `gorm:"not null" json:"organizationRole"`

	// Relationships
	Issues []Issue `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Report *Report `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
