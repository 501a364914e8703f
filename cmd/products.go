package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/smartbiz"
	"github.com/etnz/smartbiz/renderer"
	"github.com/google/subcommands"
)

type productsCmd struct {
	term     string
	category string
	low      bool
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list the products and their stock" }
func (*productsCmd) Usage() string {
	return `sbz products [-q <term>] [-category <category>] [-low]

  Lists the products whose name or SKU contains the term, ignoring case and
  accents. Products at or below their minimum stock are in bold.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.term, "q", "", "Search term")
	f.StringVar(&c.category, "category", "", "Only list the products of this category")
	f.BoolVar(&c.low, "low", false, "Only list the products at or below their minimum stock")
}

func (c *productsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	var products []smartbiz.Product
	for _, p := range w.ledger.SearchProducts(c.term) {
		if c.category != "" && smartbiz.Fold(p.Category) != smartbiz.Fold(c.category) {
			continue
		}
		if c.low && !p.IsLowStock() {
			continue
		}
		products = append(products, p)
	}
	printMarkdown(renderer.InventoryMarkdown(products, env.Currency))
	return subcommands.ExitSuccess
}

// productFlags are the editable fields of a product.
type productFlags struct {
	name, sku, category, unit string
	cost, price               string
	stock, min                string
	image                     string
}

func (p *productFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Product name")
	f.StringVar(&p.sku, "sku", "", "Stock keeping unit, the barcode. Generated from the name when empty")
	f.StringVar(&p.category, "category", "", "Category")
	f.StringVar(&p.unit, "unit", "", "Unit, "+smartbiz.DefaultUnit+" by default")
	f.StringVar(&p.cost, "cost", "", "Cost price")
	f.StringVar(&p.price, "price", "", "Sale price")
	f.StringVar(&p.stock, "stock", "", "Units in stock")
	f.StringVar(&p.min, "min", "", "Minimum stock before an alert")
	f.StringVar(&p.image, "image", "", "Image file, stored as a thumbnail")
}

// apply sets the fields of prod named by the flags set in f.
func (p *productFlags) apply(f *flag.FlagSet, prod *smartbiz.Product) error {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			prod.Name = p.name
		case "sku":
			prod.SKU = p.sku
		case "category":
			prod.Category = p.category
		case "unit":
			prod.Unit = p.unit
		case "cost":
			prod.CostPrice, err = parseAmount(p.cost)
		case "price":
			prod.SalePrice, err = parseAmount(p.price)
		case "stock":
			prod.Stock, err = parseCount("stock", p.stock)
		case "min":
			prod.MinStock, err = parseCount("minimum stock", p.min)
		case "image":
			prod.Image, err = readImage(p.image)
		}
	})
	return err
}

func parseCount(what, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return n, nil
}

func readImage(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	file, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return smartbiz.ImageDataURL(file)
}

type productAddCmd struct {
	productFlags
}

func (*productAddCmd) Name() string     { return "product-add" }
func (*productAddCmd) Synopsis() string { return "add a product to the catalog" }
func (*productAddCmd) Usage() string {
	return `sbz product-add -name <name> [-sku <sku>] [-category <category>] [-unit <unit>] [-cost <amount>] [-price <amount>] [-stock <n>] [-min <n>] [-image <file>]

  Adds a product. The SKU is generated from the name when not given.

Usage Examples:
$ sbz product-add -name "iPhone 15 Pro Max" -category "Điện thoại" -cost 25,000,000 -price 30,000,000 -stock 10 -min 2
`
}

func (c *productAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var p smartbiz.Product
	if err := c.apply(f, &p); err != nil {
		return usage("%v", err)
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	p, err = w.ledger.AddProduct(p)
	if err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ProductMarkdown(p, env.Currency))
	return subcommands.ExitSuccess
}

type productEditCmd struct {
	productFlags
}

func (*productEditCmd) Name() string     { return "product-edit" }
func (*productEditCmd) Synopsis() string { return "change the details of a product" }
func (*productEditCmd) Usage() string {
	return `sbz product-edit [<flags>] <product>

  Changes the given fields of a product, found by id, SKU or name. Setting
  the stock is a manual inventory adjustment: no transaction is recorded.
`
}

func (c *productEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("product-edit takes exactly one product")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	p, err := resolveProduct(w.ledger, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := c.apply(f, &p); err != nil {
		return usage("%v", err)
	}
	if err := w.ledger.UpdateProduct(p); err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ProductMarkdown(p, env.Currency))
	return subcommands.ExitSuccess
}

type productDeleteCmd struct{}

func (*productDeleteCmd) Name() string     { return "product-delete" }
func (*productDeleteCmd) Synopsis() string { return "remove a product from the catalog" }
func (*productDeleteCmd) Usage() string {
	return `sbz product-delete <product>

  Removes a product. Past transactions keep their copy of its name and price.
`
}

func (*productDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*productDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("product-delete takes exactly one product")
	}
	w, err := openWorkspace(ctx)
	if err != nil {
		return fail(err)
	}
	defer w.close()

	p, err := resolveProduct(w.ledger, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := w.ledger.DeleteProduct(p.ID); err != nil {
		return fail(err)
	}
	if err := w.save(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Deleted %s (%s)\n", p.Name, p.SKU)
	return subcommands.ExitSuccess
}
