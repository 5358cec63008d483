package identity

import "github.com/yungbote/deliverysla-backend/internal/domain/audit"

type Company struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name string `gorm:"column:name;size:255" json:"name"`
	audit.Audit
}

func (Company) TableName() string { return "company" }

type Client struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CompanyID int64  `gorm:"column:company_id;index" json:"company_id"`
	Name      string `gorm:"column:name;size:255;not null" json:"name"`
	ShortName string `gorm:"column:short_name;size:30" json:"short_name"`
	TaxID     string `gorm:"column:tax_id;size:255;uniqueIndex" json:"tax_id"`
	LegalName string `gorm:"column:legal_name;size:255" json:"legal_name"`
	Industry  string `gorm:"column:industry;size:255" json:"industry"`
	Address   string `gorm:"column:address;size:255" json:"address"`
	audit.Audit
}

func (Client) TableName() string { return "client" }
