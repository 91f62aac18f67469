package service

import (
	"strings"

	"github.com/unclebandit/campaignhub-backend/internal/model"
)

// RenderTemplate substitutes {placeholder} tokens in a template.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		if v == "" {
			v = "<unknown>"
		}
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// RenderForCustomer renders a template with the customer's fields.
func RenderForCustomer(template string, customer *model.Customer) string {
	return RenderTemplate(template, map[string]string{
		"first_name":        customer.FirstName,
		"last_name":         customer.LastName,
		"location":          customer.Location,
		"preferred_product": customer.PreferredProduct,
	})
}
