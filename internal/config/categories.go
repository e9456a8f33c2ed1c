package config

import "github.com/mjanssen/docflow/internal/model"

// DefaultFallbackCategory is the category used when classification cannot
// determine a better answer.
const DefaultFallbackCategory = "Overig"

// DefaultCategories returns the built-in Dutch household filing scheme.
// Order matters: prompts list categories in this order.
func DefaultCategories() []model.Category {
	return []model.Category{
		{Key: "Bankafschriften", Path: "1._Financiën/1.01._Bankafschriften"},
		{Key: "Facturen", Path: "1._Financiën/1.02._Facturen"},
		{Key: "Belastingen", Path: "1._Financiën/1.03._Belastingen"},
		{Key: "Salaris", Path: "1._Financiën/1.04._Salaris"},
		{Key: "Verzekeringen", Path: "2._Verzekeringen"},
		{Key: "Wonen", Path: "3._Wonen"},
		{Key: "Medisch", Path: "4._Medisch"},
		{Key: "Contracten", Path: "5._Contracten"},
		{Key: "Overig", Path: "9._Overig"},
	}
}
