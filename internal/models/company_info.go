package models

import "time"

const CompanyInfoID = "main"

// CompanyInfo is a single row shown on the public site.
type CompanyInfo struct {
	ID          string    `gorm:"primaryKey;size:16" json:"-"`
	Name        string    `gorm:"size:200" json:"name"`
	Description string    `gorm:"size:2000" json:"description"`
	Mission     string    `gorm:"size:2000" json:"mission"`
	Address     string    `gorm:"size:500" json:"address"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Email       string    `gorm:"size:255" json:"email"`
	Website     string    `gorm:"size:255" json:"website"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CompanyInfo) TableName() string { return "company_info" }

func DefaultCompanyInfo() CompanyInfo {
	return CompanyInfo{
		ID:          CompanyInfoID,
		Name:        "Shunmugam Textiles",
		Description: "Textile manufacturer producing quality fabrics for domestic and export markets.",
		Mission:     "To provide high quality textiles while supporting our weavers and community.",
		Address:     "Industrial Area, Chennai, Tamil Nadu, India",
		Phone:       "+91-44-12345678",
		Email:       "info@shunmugamtextiles.com",
		Website:     "www.shunmugamtextiles.com",
	}
}
