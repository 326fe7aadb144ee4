package generator

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/dbsmedya/erpfixture/internal/catalog"
	"github.com/dbsmedya/erpfixture/internal/fixture"
)

const (
	defaultPassword = "pass1234"
	maxAddressLen   = 100
	alertThreshold  = 10

	// contactPattern matches the seeded accounts' mobile numbers; each # is
	// a random digit.
	contactPattern = "010-####-####"

	stockMin, stockMax       = 15, 120
	priceMin, priceMax       = 5000, 20000
	orderQtyMin, orderQtyMax = 5, 60
	saleQtyMin, saleQtyMax   = 1, 6
	orderMaxDaysAgo          = 30
	saleMaxDaysAgo           = 15
	productCodeBase          = 1000
)

// Roles and statuses used for the seeded accounts.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// OrderStatuses are the states a generated purchase order can be in.
var OrderStatuses = []string{"PENDING", "APPROVED", "CANCELLED"}

type account struct {
	username string
	role     string
	contact  string
	status   string
}

var accounts = []account{
	{"admin01", RoleAdmin, "010-1111-2222", StatusActive},
	{"manager1", RoleManager, "010-3333-4444", StatusInactive},
}

// passwordHash renders the placeholder hash stored for seeded accounts.
// It is not a usable login credential.
func passwordHash(plain string) string {
	return fmt.Sprintf("sha256$%x", sha256.Sum256([]byte(plain)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (g *Generator) addUsers(reg *fixture.Registry, _ *ids) error {
	log := g.logger.WithEntity(catalog.ModelUser)
	for _, a := range accounts {
		now := g.timestamp(0)
		pk, err := reg.Add(catalog.ModelUser, fixture.NewFields().
			Set("username", a.username).
			Set("password", passwordHash(defaultPassword)).
			Set("email", a.username+"@test.com").
			Set("role", a.role).
			Set("contact", a.contact).
			Set("status", a.status).
			Set("is_superuser", a.role == RoleAdmin).
			Set("is_staff", true).
			Set("is_active", true).
			Set("last_login", now).
			Set("date_joined", now), catalog.KeyUser)
		if err != nil {
			return err
		}
		log.Debugw("Added user", "pk", pk, "username", a.username)
	}
	return nil
}

func (g *Generator) addSuppliers(reg *fixture.Registry, refs *ids) error {
	for i := 0; i < catalog.SupplierCount; i++ {
		pk, err := reg.Add(catalog.ModelSupplier, fixture.NewFields().
			Set("name", g.faker.Company()).
			Set("contact", g.faker.Numerify(contactPattern)).
			Set("address", truncate(g.faker.Address().Address, maxAddressLen)).
			Set("email", g.companyEmail()), catalog.KeySupplier)
		if err != nil {
			return err
		}
		refs.suppliers = append(refs.suppliers, pk)
	}
	return nil
}

func (g *Generator) companyEmail() string {
	return strings.ToLower(g.faker.Username()) + "@" + g.faker.DomainName()
}

// addProducts adds every product followed directly by its variants.
func (g *Generator) addProducts(reg *fixture.Registry, refs *ids) error {
	for i := 0; i < catalog.ProductCount; i++ {
		code := fmt.Sprintf("P%d", productCodeBase+i)

		pid, err := reg.Add(catalog.ModelProduct, fixture.NewFields().
			Set("product_code", code).
			Set("name", g.titler.String(g.faker.Word())+" 상품").
			Set("created_at", g.timestamp(0)), catalog.KeyProduct)
		if err != nil {
			return err
		}
		refs.products = append(refs.products, pid)

		for _, opt := range catalog.VariantOptions {
			vid, err := reg.Add(catalog.ModelVariant, fixture.NewFields().
				Set(catalog.FieldProduct, pid).
				Set("variant_code", code+"-"+opt).
				Set("option", "옵션-"+opt).
				Set("stock", int64(g.faker.IntRange(stockMin, stockMax))).
				Set(catalog.FieldPrice, int64(g.faker.IntRange(priceMin, priceMax))).
				Set("created_at", g.timestamp(0)), catalog.KeyVariant)
			if err != nil {
				return err
			}
			refs.variants = append(refs.variants, vid)
		}
	}
	return nil
}

func (g *Generator) addOrders(reg *fixture.Registry, refs *ids) error {
	for i := 0; i < catalog.OrderCount; i++ {
		vid, err := g.pick(refs.variants)
		if err != nil {
			return fmt.Errorf("order needs a variant: %w", err)
		}
		sid, err := g.pick(refs.suppliers)
		if err != nil {
			return fmt.Errorf("order needs a supplier: %w", err)
		}

		_, err = reg.Add(catalog.ModelOrder, fixture.NewFields().
			Set(catalog.FieldVariant, vid).
			Set(catalog.FieldSupplier, sid).
			Set(catalog.FieldQuantity, int64(g.faker.IntRange(orderQtyMin, orderQtyMax))).
			Set("status", g.faker.RandomString(OrderStatuses)).
			Set("order_date", g.timestamp(g.faker.IntRange(0, orderMaxDaysAgo))), catalog.KeyOrder)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) addSales(reg *fixture.Registry, refs *ids) error {
	for i := 0; i < catalog.SaleCount; i++ {
		qty := int64(g.faker.IntRange(saleQtyMin, saleQtyMax))
		vid, err := g.pick(refs.variants)
		if err != nil {
			return fmt.Errorf("sale needs a variant: %w", err)
		}

		variant, err := reg.Find(catalog.ModelVariant, vid)
		if err != nil {
			return err
		}
		price, ok := variant.Fields.Int64(catalog.FieldPrice)
		if !ok {
			return fmt.Errorf("variant pk=%d has no integer price", vid)
		}

		_, err = reg.Add(catalog.ModelSale, fixture.NewFields().
			Set(catalog.FieldVariant, vid).
			Set(catalog.FieldQuantity, qty).
			Set(catalog.FieldTotalPrice, price*qty).
			Set("sale_date", g.timestamp(g.faker.IntRange(0, saleMaxDaysAgo))), catalog.KeySale)
		if err != nil {
			return err
		}
	}
	return nil
}

// addAlerts raises a low-stock alert for distinct variants chosen at random.
func (g *Generator) addAlerts(reg *fixture.Registry, refs *ids) error {
	if len(refs.variants) < catalog.AlertCount {
		return fmt.Errorf("need %d distinct variants for alerts, have %d", catalog.AlertCount, len(refs.variants))
	}

	idx := make([]int, len(refs.variants))
	for i := range idx {
		idx[i] = i
	}
	g.faker.ShuffleInts(idx)

	for _, i := range idx[:catalog.AlertCount] {
		_, err := reg.Add(catalog.ModelAlert, fixture.NewFields().
			Set(catalog.FieldVariant, refs.variants[i]).
			Set("threshold", int64(alertThreshold)).
			Set("alert_date", g.timestamp(0)).
			Set("resolved", false), catalog.KeyAlert)
		if err != nil {
			return err
		}
	}
	return nil
}
