package domain

// ChartEntry is one row of the default chart-of-accounts template used when
// seeding a new company.
type ChartEntry struct {
	Code       string
	Name       string
	Nature     AccountNature
	ParentCode string // empty = top-level group
	IsSystem   bool
}

// DefaultChart is the minimal chart of accounts seeded for a new company.
// Codes follow the usual convention: 1xxx assets, 2xxx liabilities,
// 3xxx equity, 4xxx income, 5xxx expenses.
var DefaultChart = []ChartEntry{
	{Code: "1000", Name: "Current Assets", Nature: NatureAsset},
	{Code: "1100", Name: "Cash", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1200", Name: "Bank Accounts", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1300", Name: "Sundry Debtors", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1400", Name: "Input CGST", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1410", Name: "Input SGST", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1420", Name: "Input IGST", Nature: NatureAsset, ParentCode: "1000"},
	{Code: "1500", Name: "Inventory", Nature: NatureAsset, ParentCode: "1000"},

	{Code: "2000", Name: "Current Liabilities", Nature: NatureLiability},
	{Code: "2100", Name: "Sundry Creditors", Nature: NatureLiability, ParentCode: "2000"},
	{Code: "2200", Name: "Output CGST", Nature: NatureLiability, ParentCode: "2000", IsSystem: true},
	{Code: "2210", Name: "Output SGST", Nature: NatureLiability, ParentCode: "2000", IsSystem: true},
	{Code: "2220", Name: "Output IGST", Nature: NatureLiability, ParentCode: "2000", IsSystem: true},

	{Code: "3000", Name: "Capital Account", Nature: NatureEquity},
	{Code: "3100", Name: "Retained Earnings", Nature: NatureEquity, ParentCode: "3000"},

	{Code: "4000", Name: "Sales", Nature: NatureIncome},
	{Code: "4100", Name: "Service Income", Nature: NatureIncome, ParentCode: "4000"},
	{Code: "4900", Name: "Other Income", Nature: NatureIncome, ParentCode: "4000"},

	{Code: "5000", Name: "Purchases", Nature: NatureExpense},
	{Code: "5100", Name: "Salaries and Wages", Nature: NatureExpense},
	{Code: "5200", Name: "Rent", Nature: NatureExpense},
	{Code: "5900", Name: "Miscellaneous Expenses", Nature: NatureExpense},
}
