package model

import (
	"stayledger/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "products"
	EntityName = "product"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldType        = "type"
	FieldPrice       = "price"
	FieldImage       = "image"
	FieldActive      = "active"
)

type Type string

const (
	TypeRoom    Type = "ROOM"
	TypeTour    Type = "TOUR"
	TypeFood    Type = "FOOD"
	TypeService Type = "SERVICE"
	TypeMerch   Type = "MERCH"
)

type Product struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Type        Type            `db:"type"`
	Price       decimal.Decimal `db:"price"`
	Image       string          `db:"image"`
	Active      bool            `db:"active"`
	model.Metadata
}
