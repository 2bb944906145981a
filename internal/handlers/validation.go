package handlers

import (
	"reflect"
	"strings"
	"time"

	"it-inventory/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	registerValidations(v)
}

func registerValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	// dates validate as the time they hold, so required rejects the zero
	// value
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(models.Date); ok {
			return d.Time
		}
		return nil
	}, models.Date{})

	v.RegisterStructValidation(contractPeriod, models.WarrantyContract{}, models.MaintenanceContract{})
	v.RegisterStructValidation(pricingPeriod, models.Pricing{})
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// contractPeriod rejects contracts that end before they start.
func contractPeriod(sl validator.StructLevel) {
	c, ok := sl.Current().Interface().(interface {
		Period() (time.Time, time.Time)
	})
	if !ok {
		return
	}
	start, end := c.Period()
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		sl.ReportError(end, "endDate", "EndDate", "gtefield", "startDate")
	}
}

func pricingPeriod(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(models.Pricing)
	if !ok || p.EndDate == nil || p.EndDate.IsZero() {
		return
	}
	if p.EndDate.Before(p.EffectiveDate.Time) {
		sl.ReportError(p.EndDate, "endDate", "EndDate", "gtefield", "effectiveDate")
	}
}
