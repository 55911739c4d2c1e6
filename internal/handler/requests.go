package handler

import (
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/validation"
	"github.com/spf13/cast"
)

// EmptyRequest is the payload of endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type ListComputersRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=0 1 2"`
}

func (r *ListComputersRequest) Validate() error {
	return validation.Struct(r)
}

// StatusFilter returns the requested status, or nil when none was given.
func (r *ListComputersRequest) StatusFilter() *model.ComputerStatus {
	if r.Status == "" {
		return nil
	}
	status := model.ComputerStatus(cast.ToInt16(r.Status))
	return &status
}

type ComputerIDRequest struct {
	ID int16 `param:"id" validate:"required,min=1"`
}

func (r *ComputerIDRequest) Validate() error {
	return validation.Struct(r)
}

type SetFoodQuantityRequest struct {
	ComputerID int16 `param:"id" validate:"required,min=1"`
	FoodID     int   `json:"food_id" validate:"required,min=1"`
	Count      *int  `json:"count" validate:"required,min=0,max=999"`
}

func (r *SetFoodQuantityRequest) Validate() error {
	return validation.Struct(r)
}

type CategoryFoodsRequest struct {
	Name string `param:"name" validate:"required,max=100"`
}

func (r *CategoryFoodsRequest) Validate() error {
	return validation.Struct(r)
}

type BillingIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (r *BillingIDRequest) Validate() error {
	return validation.Struct(r)
}
