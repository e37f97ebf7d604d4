package dto

import (
	"stayledger/internal/domains/product/model"
	"stayledger/shared"
	gDto "stayledger/shared/dto"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Active      bool            `json:"active"`
	gDto.Metadata
}

func (r *ProductResponse) FromModel(model model.Product) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Type = string(model.Type)
	r.Price = model.Price
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}
