package requests

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs struct-level validation for the request
// window so malformed payloads are rejected at binding time rather than
// deep in the service.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		payload := sl.Current().Interface().(CreateRequestPayload)

		hasSingle := payload.RequestDate != nil
		hasRange := payload.StartDate != nil && payload.EndDate != nil

		if hasSingle == hasRange {
			sl.ReportError(payload.RequestDate, "request_date", "RequestDate", "requestwindow", "")
			return
		}
		if hasRange && payload.EndDate.Before(*payload.StartDate) {
			sl.ReportError(payload.EndDate, "end_date", "EndDate", "dateorder", "")
		}
	}, CreateRequestPayload{})
}
