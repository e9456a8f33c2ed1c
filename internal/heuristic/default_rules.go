package heuristic

// DefaultRules returns the default document classification rules. Category
// keys match the default category map in internal/config.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "Bank statement",
			Pattern:  `\b(bankafschrift|rekeningafschrift|rekeningoverzicht|bank\s*statement|saldo-?overzicht|IBAN)\b`,
			Category: "Bankafschriften",
		},
		{
			Name:     "Invoice",
			Pattern:  `\b(factuur|factuurnummer|invoice|betalingstermijn|te\s*betalen|btw-?bedrag)\b`,
			Category: "Facturen",
		},
		{
			Name:     "Tax",
			Pattern:  `\b(belastingdienst|aangifte|aanslag|inkomstenbelasting|toeslagen|BSN)\b`,
			Category: "Belastingen",
		},
		{
			Name:     "Insurance",
			Pattern:  `\b(polis|polisnummer|verzekering|premie|dekking|schadeclaim)\b`,
			Category: "Verzekeringen",
		},
		{
			Name:     "Payslip",
			Pattern:  `\b(salaris|loonstrook|loonspecificatie|bruto\s*loon|netto\s*loon|jaaropgave)\b`,
			Category: "Salaris",
		},
		{
			Name:     "Housing",
			Pattern:  `\b(huurovereenkomst|huurcontract|hypotheek|VvE|servicekosten|woningcorporatie)\b`,
			Category: "Wonen",
		},
		{
			Name:     "Medical",
			Pattern:  `\b(huisarts|ziekenhuis|recept|medisch|apotheek|zorgverzekeraar|declaratie)\b`,
			Category: "Medisch",
		},
		{
			Name:     "Contract",
			Pattern:  `\b(overeenkomst|contract|ondergetekende|algemene\s*voorwaarden|opzegtermijn)\b`,
			Category: "Contracten",
		},
	}
}
