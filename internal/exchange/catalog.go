// Package exchange models the parlor prize counter: finished sessions trade
// their folded ball count for prizes priced in balls.
package exchange

// Prize is one item behind the counter.
type Prize struct {
	ID    string // SKU id, e.g. "chocolate"
	Name  string // display name
	Balls int    // cost in balls
}

// Catalog is the prize list of one parlor.
type Catalog struct {
	Prizes []Prize
}

// Item is one line of a redemption plan.
type Item struct {
	PrizeID string `json:"prize_id"`
	Name    string `json:"name"`
	Qty     int    `json:"qty"`
	Balls   int    `json:"balls"` // total balls spent on this line
}

// Plan summarizes how a ball budget is redeemed.
type Plan struct {
	Items         []Item `json:"items"`
	SpentBalls    int    `json:"spent_balls"`
	LeftoverBalls int    `json:"leftover_balls"`
}

// DefaultCatalog is the stock counter used when the caller supplies none.
func DefaultCatalog() Catalog {
	return Catalog{Prizes: []Prize{
		{ID: "gum", Name: "Gum", Balls: 20},
		{ID: "chocolate", Name: "Chocolate Bar", Balls: 90},
		{ID: "figure", Name: "Prize Figure", Balls: 400},
		{ID: "gold_card", Name: "Gold Card", Balls: 1500},
	}}
}
