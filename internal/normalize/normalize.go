package normalize

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finmerge/finmerge/internal/importer"
	"github.com/finmerge/finmerge/internal/model"
)

// IDPolicy produces the identifier of a record built from row.
type IDPolicy func(row importer.Row) (string, error)

// CopyColumn takes the identifier verbatim from col.
func CopyColumn(col string) IDPolicy {
	return func(row importer.Row) (string, error) {
		id := row[col]
		if strings.TrimSpace(id) == "" {
			return "", ErrMissingIdentifier
		}
		return id, nil
	}
}

// Generate mints a fresh identifier on every call, ignoring the row.
func Generate(gen func() string) IDPolicy {
	return func(importer.Row) (string, error) {
		return gen(), nil
	}
}

// variant maps one source shape onto the canonical record.
type variant struct {
	kind        model.Kind
	date        string
	amount      string
	description string
	category    string // "" when the shape has none
	id          IDPolicy
}

// Normalizer turns raw rows into canonical records.
type Normalizer struct {
	variants map[Shape]variant
}

// New returns a Normalizer that mints random UUIDs for purchases.
func New() *Normalizer {
	return NewWithGenerator(uuid.NewString)
}

// NewWithGenerator returns a Normalizer using gen for purchase identifiers.
func NewWithGenerator(gen func() string) *Normalizer {
	return &Normalizer{
		variants: map[Shape]variant{
			ShapeTransaction: {
				kind:        model.KindTransaction,
				date:        ColTxnDate,
				amount:      ColTxnAmount,
				description: ColTxnDescription,
				id:          CopyColumn(ColTxnID),
			},
			ShapePurchase: {
				kind:        model.KindPurchase,
				date:        ColPurchaseDate,
				amount:      ColPurchaseAmount,
				description: ColPurchaseTitle,
				category:    ColPurchaseCategory,
				id:          Generate(gen),
			},
		},
	}
}

// Normalize maps row onto a record. ok is false, with a nil error, when
// the row matches no known shape and should be skipped.
func (n *Normalizer) Normalize(row importer.Row) (rec model.Record, ok bool, err error) {
	v, found := n.variants[Classify(row)]
	if !found {
		return model.Record{}, false, nil
	}

	date, err := ParseDate(row[v.date])
	if err != nil {
		return model.Record{}, false, err
	}

	amount, err := ParseAmount(row[v.amount])
	if err != nil {
		return model.Record{}, false, err
	}

	id, err := v.id(row)
	if err != nil {
		return model.Record{}, false, fmt.Errorf("%s row: %w", v.kind, err)
	}

	rec = model.Record{
		Date:        date,
		Amount:      amount,
		Description: row[v.description],
		ID:          id,
		Kind:        v.kind,
	}
	if v.category != "" {
		rec.Category = row[v.category]
	}
	return rec, true, nil
}
