// Package catalog describes the fixed set of entity types that make up an
// ERP seed fixture: their model labels, counter keys, expected counts and the
// foreign-key fields that tie them together.
//
// The generator, the dependency planner and the verifier all read from here,
// so the three can never disagree about what a complete fixture looks like.
package catalog

// Model labels, as understood by the fixture loader (app_label.model).
const (
	ModelUser     = "auth.user"
	ModelSupplier = "inventory.suppliers"
	ModelProduct  = "inventory.products"
	ModelVariant  = "inventory.product_variants"
	ModelOrder    = "inventory.orders"
	ModelSale     = "inventory.sales"
	ModelAlert    = "inventory.alerts"
)

// Counter keys. Each key owns an independent identifier sequence.
const (
	KeyUser     = "user"
	KeySupplier = "sup"
	KeyProduct  = "prod"
	KeyVariant  = "var"
	KeyOrder    = "order"
	KeySale     = "sale"
	KeyAlert    = "alert"
)

// Field names that other components need to reason about.
const (
	FieldProduct    = "product"
	FieldVariant    = "variant"
	FieldSupplier   = "supplier"
	FieldPrice      = "price"
	FieldQuantity   = "quantity"
	FieldTotalPrice = "total_price"
)

// Fixed record counts.
const (
	UserCount     = 2
	SupplierCount = 3
	ProductCount  = 8
	OrderCount    = 20
	SaleCount     = 40
	AlertCount    = 6
)

// VariantOptions are the option suffixes generated for every product.
var VariantOptions = []string{"A", "B"}

// VariantCount is the number of variants across all products.
var VariantCount = ProductCount * len(VariantOptions)

// TimestampLayout matches Python's datetime.isoformat() for naive UTC values
// with microseconds, which is what the loader expects.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Reference is a field in one entity that holds the pk of another.
type Reference struct {
	Field string // field holding the referenced pk
	Model string // referenced model
}

// Entity describes one entity type in the fixture.
type Entity struct {
	Model      string
	Key        string
	Label      string // display name used in CLI output
	Count      int
	References []Reference
}

// Entities returns the catalog in generation order.
func Entities() []Entity {
	return []Entity{
		{Model: ModelUser, Key: KeyUser, Label: "사용자", Count: UserCount},
		{Model: ModelSupplier, Key: KeySupplier, Label: "공급업체", Count: SupplierCount},
		{Model: ModelProduct, Key: KeyProduct, Label: "상품", Count: ProductCount},
		{
			Model: ModelVariant, Key: KeyVariant, Label: "상품 옵션", Count: VariantCount,
			References: []Reference{{Field: FieldProduct, Model: ModelProduct}},
		},
		{
			Model: ModelOrder, Key: KeyOrder, Label: "발주", Count: OrderCount,
			References: []Reference{
				{Field: FieldVariant, Model: ModelVariant},
				{Field: FieldSupplier, Model: ModelSupplier},
			},
		},
		{
			Model: ModelSale, Key: KeySale, Label: "판매", Count: SaleCount,
			References: []Reference{{Field: FieldVariant, Model: ModelVariant}},
		},
		{
			Model: ModelAlert, Key: KeyAlert, Label: "재고 알림", Count: AlertCount,
			References: []Reference{{Field: FieldVariant, Model: ModelVariant}},
		},
	}
}

// Keys returns every counter key in generation order.
func Keys() []string {
	entities := Entities()
	keys := make([]string, 0, len(entities))
	for _, e := range entities {
		keys = append(keys, e.Key)
	}
	return keys
}

// Models returns every model label in generation order.
func Models() []string {
	entities := Entities()
	models := make([]string, 0, len(entities))
	for _, e := range entities {
		models = append(models, e.Model)
	}
	return models
}

// Lookup returns the entity for a model label.
func Lookup(model string) (Entity, bool) {
	for _, e := range Entities() {
		if e.Model == model {
			return e, true
		}
	}
	return Entity{}, false
}

// TotalCount is the number of records a complete fixture holds.
func TotalCount() int {
	total := 0
	for _, e := range Entities() {
		total += e.Count
	}
	return total
}
