package models

import "fmt"

// Laptop represents a laptop listing stored in the laptops table.
// Price is kept as text; clients format it themselves.
type Laptop struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Price       string `json:"price" gorm:"type:text;not null"`
	Processor   string `json:"processor" gorm:"type:text;not null"`
	RAM         string `json:"ram" gorm:"column:ram;type:text;not null"`
	Storage     string `json:"storage" gorm:"type:text;not null"`
	Display     string `json:"display" gorm:"type:text;not null"`
	OS          string `json:"os" gorm:"column:os;type:text;not null"`
	Graphics    string `json:"graphics" gorm:"type:text;not null"`
}

// TableName returns the table name for Laptop.
func (Laptop) TableName() string {
	return "laptops"
}

// LaptopInput is the request body for create and update.
// Fields are pointers so a missing field can be told apart from an empty one.
type LaptopInput struct {
	ID          *int64  `json:"id,omitempty"` // accepted, never used
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Price       *string `json:"price" validate:"required"`
	Processor   *string `json:"processor" validate:"required"`
	RAM         *string `json:"ram" validate:"required"`
	Storage     *string `json:"storage" validate:"required"`
	Display     *string `json:"display" validate:"required"`
	OS          *string `json:"os" validate:"required"`
	Graphics    *string `json:"graphics" validate:"required"`
}

// ToLaptop builds a Laptop row with the given id.
// Call it only on input that passed validation.
func (in LaptopInput) ToLaptop(id int64) Laptop {
	return Laptop{
		ID:          id,
		Name:        deref(in.Name),
		Description: deref(in.Description),
		Price:       deref(in.Price),
		Processor:   deref(in.Processor),
		RAM:         deref(in.RAM),
		Storage:     deref(in.Storage),
		Display:     deref(in.Display),
		OS:          deref(in.OS),
		Graphics:    deref(in.Graphics),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Supported SQL dialects for the laptops table.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS laptops (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	price TEXT NOT NULL,
	processor TEXT NOT NULL,
	ram TEXT NOT NULL,
	storage TEXT NOT NULL,
	display TEXT NOT NULL,
	os TEXT NOT NULL,
	graphics TEXT NOT NULL
)`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS laptops (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	price TEXT NOT NULL,
	processor TEXT NOT NULL,
	ram TEXT NOT NULL,
	storage TEXT NOT NULL,
	display TEXT NOT NULL,
	os TEXT NOT NULL,
	graphics TEXT NOT NULL
)`

// SchemaStatement returns the idempotent CREATE TABLE statement for dialect.
func SchemaStatement(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return postgresSchema, nil
	case DialectSQLite:
		return sqliteSchema, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}
