// Package model holds the gorm models backing the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a user record.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(16);not null;default:'owner'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Namespace is a namespace record. (user_id, name) is unique; two users may
// each have a "personal" namespace.
type Namespace struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_namespaces_user_name"`
	Name      string    `gorm:"size:50;not null;uniqueIndex:idx_namespaces_user_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Accounts  []Account `gorm:"foreignKey:NamespaceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Namespace model.
func (Namespace) TableName() string { return "namespaces" }

// Account is an account record. Balance is minor units; the currency never
// changes after creation. (user_id, namespace_id, name) is unique.
type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_ns_name"`
	NamespaceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_user_ns_name"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_accounts_user_ns_name"`
	Balance     int64     `gorm:"not null;default:0"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Transaction is an append-only ledger record. The account references are
// weak (ON DELETE SET NULL): deleting an account nulls them but never
// deletes history. Rates are snapshots taken at posting time.
type Transaction struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type                 string     `gorm:"type:varchar(8);not null"`
	Amount               int64      `gorm:"not null"`
	Currency             string     `gorm:"type:varchar(3);not null"`
	DestinationAmount    *int64
	DestinationCurrency  *string    `gorm:"type:varchar(3)"`
	SourceRate           *decimal.Decimal `gorm:"type:decimal(19,6)"`
	DestinationRate      *decimal.Decimal `gorm:"type:decimal(19,6)"`
	SourceAccountID      *uuid.UUID `gorm:"type:uuid;index"`
	DestinationAccountID *uuid.UUID `gorm:"type:uuid;index"`
	Description          string     `gorm:"type:text"`
	CreatedAt            time.Time  `gorm:"index"`

	// Association fields exist so AutoMigrate creates the ON DELETE SET NULL
	// foreign keys; they are never preloaded or written.
	SourceAccount      *Account `gorm:"foreignKey:SourceAccountID;constraint:OnDelete:SET NULL"`
	DestinationAccount *Account `gorm:"foreignKey:DestinationAccountID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// ConversionRate is a stored rate record. (user_id, from, to) is unique per
// direction; USD->EUR and EUR->USD are distinct rows.
type ConversionRate struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rates_user_pair"`
	From      string          `gorm:"column:from_currency;type:varchar(3);not null;uniqueIndex:idx_rates_user_pair"`
	To        string          `gorm:"column:to_currency;type:varchar(3);not null;uniqueIndex:idx_rates_user_pair"`
	Rate      decimal.Decimal `gorm:"type:decimal(19,6);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the ConversionRate model.
func (ConversionRate) TableName() string { return "conversion_rates" }

// Project is a project record.
type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Project model.
func (Project) TableName() string { return "projects" }

// Budget is the single budget row of a project.
type Budget struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Total     int64     `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Budget model.
func (Budget) TableName() string { return "budgets" }

// Expense is an expense record booked against a project.
type Expense struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"size:255;not null"`
	Amount    int64     `gorm:"not null"`
	Date      time.Time
	CreatedAt time.Time
}

// TableName specifies the table name for the Expense model.
func (Expense) TableName() string { return "expenses" }

// SalaryPayment is a salary record. ProjectID is optional.
type SalaryPayment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index"`
	Amount     int64      `gorm:"not null"`
	Date       time.Time
	CreatedAt  time.Time
}

// TableName specifies the table name for the SalaryPayment model.
func (SalaryPayment) TableName() string { return "salary_payments" }
