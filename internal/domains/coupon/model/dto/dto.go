package dto

import (
	"database/sql"
	"stayledger/internal/domains/coupon/model"
	"stayledger/shared"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	gModel "stayledger/shared/model"
	"stayledger/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCouponRequest struct {
	Code          string          `json:"code"           validate:"required,alphanum,max=30"`
	PartnerName   string          `json:"partner_name"   validate:"required,max=255"`
	Description   string          `json:"description"    validate:"omitempty,max=1000"`
	DiscountType  string          `json:"discount_type"  validate:"required,oneof=PERCENT FIXED"`
	DiscountValue decimal.Decimal `json:"discount_value" validate:"money"`
	ValidFrom     time.Time       `json:"valid_from"     validate:"required"`
	ValidUntil    time.Time       `json:"valid_until"    validate:"required,gtfield=ValidFrom"`
	MaxUses       *int            `json:"max_uses"       validate:"omitempty,gt=0"`
}

func (r *CreateCouponRequest) ToModel(now time.Time, username string) model.Coupon {
	coupon := model.Coupon{
		ID:            uuid.NewString(),
		Code:          model.NormalizeCode(r.Code),
		PartnerName:   r.PartnerName,
		Description:   r.Description,
		DiscountType:  model.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		Active:        true,
		Metadata:      gModel.NewMetadata(now, username),
	}

	if r.MaxUses != nil {
		coupon.MaxUses = sql.NullInt64{Int64: int64(*r.MaxUses), Valid: true}
	}

	return coupon
}

type CouponResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	PartnerName   string          `json:"partner_name"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	ValidFrom     string          `json:"valid_from"`
	ValidUntil    string          `json:"valid_until"`
	MaxUses       *int64          `json:"max_uses"`
	UsedCount     int             `json:"used_count"`
	Active        bool            `json:"active"`
	gDto.Metadata
}

func (r *CouponResponse) FromModel(mod model.Coupon) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.PartnerName = mod.PartnerName
	r.Description = mod.Description
	r.DiscountType = string(mod.DiscountType)
	r.DiscountValue = mod.DiscountValue
	r.ValidFrom = timezone.Format(mod.ValidFrom, constant.DateFormat)
	r.ValidUntil = timezone.Format(mod.ValidUntil, constant.DateFormat)
	r.UsedCount = mod.UsedCount
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)

	if mod.MaxUses.Valid {
		maxUses := mod.MaxUses.Int64
		r.MaxUses = &maxUses
	}
}

type GetCouponsResponse struct {
	Coupons   []CouponResponse `json:"coupons"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetCouponsResponse) FromModels(models []model.Coupon, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Coupons = make([]CouponResponse, len(models))
	for i, mod := range models {
		r.Coupons[i].FromModel(mod)
	}
}
