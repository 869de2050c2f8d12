// Package examples holds the canned questions shown by the CLI and the web
// UI.
package examples

type Example struct {
	Query       string `json:"query"`
	Description string `json:"description"`
}

var catalog = []Example{
	{
		Query:       "How many customers signed up in July?",
		Description: "Counts customers who signed up in July 2025",
	},
	{
		Query:       "Show me all orders above $1000",
		Description: "Finds all orders with amount greater than $1000",
	},
	{
		Query:       "What's the average order amount?",
		Description: "Calculates the average order amount",
	},
	{
		Query:       "List customers who made orders in March",
		Description: "Shows customers who placed orders in March 2025",
	},
	{
		Query:       "Show total sales per customer",
		Description: "Calculates total sales for each customer",
	},
	{
		Query:       "Find the customer with the highest order amount",
		Description: "Finds the customer who made the highest value order",
	},
}

// List returns a copy so callers cannot mutate the catalog.
func List() []Example {
	out := make([]Example, len(catalog))
	copy(out, catalog)
	return out
}
