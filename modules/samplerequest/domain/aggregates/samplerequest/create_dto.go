package samplerequest

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/pkg/constants"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

type ItemDTO struct {
	ProductName string `json:"product_name" validate:"required,max=255"`
	Finish      string `json:"finish" validate:"max=255"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

type CreateDTO struct {
	Title             string    `json:"title" validate:"required,max=255"`
	Notes             string    `json:"notes" validate:"max=2000"`
	FulfillmentMethod string    `json:"fulfillment_method" validate:"required"`
	RequiredBy        time.Time `json:"required_by" validate:"required"`
	Items             []ItemDTO `json:"items" validate:"required,min=1,dive"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Notes = strings.TrimSpace(d.Notes)
	d.FulfillmentMethod = strings.ToLower(strings.TrimSpace(d.FulfillmentMethod))
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	validationErrors := make(serrors.ValidationErrors)

	errs := constants.Validate.Struct(d)
	if errs != nil {
		validatorErrs := errs.(validator.ValidationErrors)
		for field, err := range serrors.ProcessValidatorErrors(validatorErrs) {
			validationErrors[field] = err
		}
	}
	if d.FulfillmentMethod != "" {
		if _, err := NewFulfillmentMethod(d.FulfillmentMethod); err != nil {
			validationErrors["FulfillmentMethod"] = serrors.NewError(
				"SAMPLES_INVALID_METHOD",
				"fulfillment method must be self_pickup, courier, freight or postal",
			)
		}
	}

	if len(validationErrors) == 0 {
		return map[string]string{}, true
	}
	return serrors.Flatten(validationErrors), false
}

func (d *CreateDTO) ToEntity(requesterID uuid.UUID, requesterName string) (SampleRequest, error) {
	method, err := NewFulfillmentMethod(d.FulfillmentMethod)
	if err != nil {
		return SampleRequest{}, err
	}
	items := make([]Item, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, Item{
			ProductName: strings.TrimSpace(item.ProductName),
			Finish:      strings.TrimSpace(item.Finish),
			Quantity:    item.Quantity,
		})
	}
	return New(d.Title, d.Notes, requesterID, requesterName, method, d.RequiredBy, items), nil
}
