// In file: internal/tools/food.go
package tools

import (
	"context"
	"strings"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
)

const foodDeliveryEstimate = "30-40 mins"

// FoodSearch is the payload of search_food.
type FoodSearch struct {
	Results []fixtures.FoodItem `json:"results"`
	Count   int                 `json:"count"`
}

// FoodOrder is the payload of food place_order.
type FoodOrder struct {
	OrderID           string  `json:"order_id"`
	Status            string  `json:"status"`
	Item              string  `json:"item"`
	Restaurant        string  `json:"restaurant"`
	Quantity          int     `json:"quantity"`
	TotalPrice        float64 `json:"total_price"`
	EstimatedDelivery string  `json:"estimated_delivery"`
}

// RestaurantInfo is the payload of get_restaurant_info.
type RestaurantInfo struct {
	Restaurant fixtures.Restaurant `json:"restaurant"`
}

var (
	searchFoodTool = ToolDescriptor{
		Name:        "search_food",
		Description: "Search for food items by name or restaurant",
		Params: []ParamSpec{
			{Name: "query", Type: ParamString, Required: true, Description: "Food item or restaurant to search for (e.g. 'pizza', 'biryani')"},
		},
	}
	placeFoodOrderTool = ToolDescriptor{
		Name:        "place_order",
		Description: "Place a food order",
		Params: []ParamSpec{
			{Name: "item_id", Type: ParamString, Required: true, Description: "ID of the food item to order"},
			{Name: "quantity", Type: ParamInteger, Required: true, Description: "Number of items to order", Minimum: bound(1), Maximum: bound(10), Default: 1},
		},
	}
	restaurantInfoTool = ToolDescriptor{
		Name:        "get_restaurant_info",
		Description: "Get detailed information about a restaurant",
		Params: []ParamSpec{
			{Name: "restaurant_name", Type: ParamString, Required: true, Description: "Name of the restaurant"},
		},
	}
)

type foodTools struct {
	catalog *fixtures.Catalog
	opts    domainOptions
}

// NewFoodRegistry builds the food domain. In real mode every tool reports NotImplemented.
func NewFoodRegistry(catalog *fixtures.Catalog, mode Mode, opts ...DomainOption) *Registry {
	reg := NewRegistry(DomainFood, mode)
	if mode == ModeReal {
		stub := notImplemented("Zomato")
		reg.mustRegister(searchFoodTool, stub)
		reg.mustRegister(placeFoodOrderTool, stub)
		reg.mustRegister(restaurantInfoTool, stub)
		return reg
	}

	ft := &foodTools{catalog: catalog, opts: buildOptions(opts)}
	reg.mustRegister(searchFoodTool, ft.search)
	reg.mustRegister(placeFoodOrderTool, ft.placeOrder)
	reg.mustRegister(restaurantInfoTool, ft.restaurantInfo)
	return reg
}

func (ft *foodTools) search(_ context.Context, args Args) (any, error) {
	var in struct {
		Query string `mapstructure:"query"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	q := strings.ToLower(in.Query)
	var results []fixtures.FoodItem
	for _, item := range ft.catalog.FoodItems {
		if strings.Contains(strings.ToLower(item.Name), q) || strings.Contains(strings.ToLower(item.Restaurant), q) {
			results = append(results, item)
		}
	}
	if len(results) == 0 {
		results = append(results, ft.catalog.FoodItems...)
	}
	return FoodSearch{Results: results, Count: len(results)}, nil
}

func (ft *foodTools) placeOrder(_ context.Context, args Args) (any, error) {
	var in struct {
		ItemID   string `mapstructure:"item_id"`
		Quantity int    `mapstructure:"quantity"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	item, ok := ft.catalog.FoodItem(in.ItemID)
	if !ok {
		return nil, Errorf(NotFound, "Item with ID %s not found", in.ItemID)
	}
	return FoodOrder{
		OrderID:           ft.opts.newID("ZOMATO", 10000, 99999),
		Status:            "confirmed",
		Item:              item.Name,
		Restaurant:        item.Restaurant,
		Quantity:          in.Quantity,
		TotalPrice:        item.Price * float64(in.Quantity),
		EstimatedDelivery: foodDeliveryEstimate,
	}, nil
}

func (ft *foodTools) restaurantInfo(_ context.Context, args Args) (any, error) {
	var in struct {
		RestaurantName string `mapstructure:"restaurant_name"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	r, ok := ft.catalog.Restaurant(in.RestaurantName)
	if !ok {
		return nil, Errorf(NotFound, "Restaurant '%s' not found", in.RestaurantName)
	}
	return RestaurantInfo{Restaurant: r}, nil
}
