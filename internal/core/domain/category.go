package domain

// Category classifies transactions, budgets and planned events.
type Category string

const (
	CategoryFood           Category = "FOOD"
	CategoryGrocery        Category = "GROCERY"
	CategoryRent           Category = "RENT"
	CategoryUtilities      Category = "UTILITIES"
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryHealthcare     Category = "HEALTHCARE"
	CategoryEntertainment  Category = "ENTERTAINMENT"
	CategoryClothing       Category = "CLOTHING"
	CategoryEducation      Category = "EDUCATION"
	CategoryTravel         Category = "TRAVEL"
	CategoryShopping       Category = "SHOPPING"
	CategorySalary         Category = "SALARY"
	CategoryInvestment     Category = "INVESTMENT"
	CategoryOther          Category = "OTHER"
)

var validCategories = map[Category]struct{}{
	CategoryFood: {}, CategoryGrocery: {}, CategoryRent: {}, CategoryUtilities: {},
	CategoryTransportation: {}, CategoryHealthcare: {}, CategoryEntertainment: {},
	CategoryClothing: {}, CategoryEducation: {}, CategoryTravel: {}, CategoryShopping: {},
	CategorySalary: {}, CategoryInvestment: {}, CategoryOther: {},
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	_, ok := validCategories[c]
	return ok
}
