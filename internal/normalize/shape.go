package normalize

import "github.com/finmerge/finmerge/internal/importer"

// Transaction-shaped column names, as exported by the bank.
const (
	ColTxnDate        = "Data"
	ColTxnAmount      = "Valor"
	ColTxnDescription = "Descrição"
	ColTxnID          = "Identificador"
)

// Purchase-shaped column names.
const (
	ColPurchaseDate     = "date"
	ColPurchaseAmount   = "amount"
	ColPurchaseTitle    = "title"
	ColPurchaseCategory = "category"
)

// Shape is the result of classifying a raw row.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeTransaction
	ShapePurchase
)

func (s Shape) String() string {
	switch s {
	case ShapeTransaction:
		return "transaction"
	case ShapePurchase:
		return "purchase"
	default:
		return "unrecognized"
	}
}

// shapeRule pairs a shape with the columns whose presence identifies it.
type shapeRule struct {
	shape    Shape
	required []string
}

// rules are tried in order; the first full match wins.
var rules = []shapeRule{
	{shape: ShapeTransaction, required: []string{ColTxnDate, ColTxnID}},
	{shape: ShapePurchase, required: []string{ColPurchaseAmount, ColPurchaseTitle}},
}

// Classify decides which known shape row belongs to.
func Classify(row importer.Row) Shape {
	for _, rule := range rules {
		if hasAll(row, rule.required) {
			return rule.shape
		}
	}
	return ShapeUnrecognized
}

func hasAll(row importer.Row, cols []string) bool {
	for _, c := range cols {
		if !row.Has(c) {
			return false
		}
	}
	return true
}
