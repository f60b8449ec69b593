// In file: internal/tools/product.go
package tools

import (
	"context"
	"strings"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
)

const productDeliveryEstimate = "2-3 business days"

// ProductSearch is the payload of search_product.
type ProductSearch struct {
	Results []fixtures.Product `json:"results"`
	Count   int                `json:"count"`
}

// ProductOrder is the payload of product place_order.
type ProductOrder struct {
	OrderID           string  `json:"order_id"`
	Status            string  `json:"status"`
	Product           string  `json:"product"`
	Quantity          int     `json:"quantity"`
	TotalPrice        float64 `json:"total_price"`
	EstimatedDelivery string  `json:"estimated_delivery"`
}

// ProductDetails is the payload of get_product_details.
type ProductDetails struct {
	Product fixtures.Product `json:"product"`
}

var (
	searchProductTool = ToolDescriptor{
		Name:        "search_product",
		Description: "Search for products by name or category",
		Params: []ParamSpec{
			{Name: "query", Type: ParamString, Required: true, Description: "Product name or category to search for"},
		},
	}
	placeProductOrderTool = ToolDescriptor{
		Name:        "place_order",
		Description: "Place an order for a product",
		Params: []ParamSpec{
			{Name: "item_id", Type: ParamString, Required: true, Description: "Product ID to order"},
			{Name: "quantity", Type: ParamInteger, Description: "Quantity to order", Minimum: bound(1), Maximum: bound(10), Default: 1},
		},
	}
	productDetailsTool = ToolDescriptor{
		Name:        "get_product_details",
		Description: "Get detailed information about a specific product",
		Params: []ParamSpec{
			{Name: "product_id", Type: ParamString, Required: true, Description: "Product ID"},
		},
	}
)

type productTools struct {
	catalog *fixtures.Catalog
	opts    domainOptions
}

// NewProductRegistry builds the product domain. In real mode every tool reports NotImplemented.
func NewProductRegistry(catalog *fixtures.Catalog, mode Mode, opts ...DomainOption) *Registry {
	reg := NewRegistry(DomainProduct, mode)
	if mode == ModeReal {
		stub := notImplemented("Amazon")
		reg.mustRegister(searchProductTool, stub)
		reg.mustRegister(placeProductOrderTool, stub)
		reg.mustRegister(productDetailsTool, stub)
		return reg
	}

	pt := &productTools{catalog: catalog, opts: buildOptions(opts)}
	reg.mustRegister(searchProductTool, pt.search)
	reg.mustRegister(placeProductOrderTool, pt.placeOrder)
	reg.mustRegister(productDetailsTool, pt.details)
	return reg
}

func (pt *productTools) search(_ context.Context, args Args) (any, error) {
	var in struct {
		Query string `mapstructure:"query"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	q := strings.ToLower(in.Query)
	var results []fixtures.Product
	for _, p := range pt.catalog.Products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			results = append(results, p)
		}
	}
	if len(results) == 0 {
		results = append(results, pt.catalog.Products...)
	}
	return ProductSearch{Results: results, Count: len(results)}, nil
}

func (pt *productTools) placeOrder(_ context.Context, args Args) (any, error) {
	var in struct {
		ItemID   string `mapstructure:"item_id"`
		Quantity int    `mapstructure:"quantity"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	p, ok := pt.catalog.Product(in.ItemID)
	if !ok {
		return nil, Errorf(NotFound, "Product %s not found", in.ItemID)
	}
	if !p.InStock {
		return nil, Errorf(OutOfStock, "Product out of stock")
	}
	return ProductOrder{
		OrderID:           pt.opts.newID("AMZ", 100000, 999999),
		Status:            "processing",
		Product:           p.Name,
		Quantity:          in.Quantity,
		TotalPrice:        p.Price * float64(in.Quantity),
		EstimatedDelivery: productDeliveryEstimate,
	}, nil
}

func (pt *productTools) details(_ context.Context, args Args) (any, error) {
	var in struct {
		ProductID string `mapstructure:"product_id"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	p, ok := pt.catalog.Product(in.ProductID)
	if !ok {
		return nil, Errorf(NotFound, "Product %s not found", in.ProductID)
	}
	return ProductDetails{Product: p}, nil
}
