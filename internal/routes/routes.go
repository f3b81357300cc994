package routes

import (
	"fmt"

	"silverradar/internal/market"
)

// Point is a position on the 1000x1000 schematic map of the royal continent.
type Point struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// Plan describes the travel leg between two cities.
type Plan struct {
	From      string `json:"from"`
	To        string `json:"to"`
	FromPoint Point  `json:"from_point"`
	ToPoint   Point  `json:"to_point"`
	// RedZone is true when either endpoint sits in full-loot territory.
	RedZone bool   `json:"red_zone"`
	Risk    string `json:"risk"`
}

var cityPoints = map[string]Point{
	market.CityThetford:     {X: 250, Y: 300, Color: "#a855f7", Label: "Thetford"},
	market.CityFortSterling: {X: 700, Y: 250, Color: "#f8fafc", Label: "Fort Sterling"},
	market.CityLymhurst:     {X: 800, Y: 700, Color: "#4ade80", Label: "Lymhurst"},
	market.CityBridgewatch:  {X: 500, Y: 850, Color: "#fb923c", Label: "Bridgewatch"},
	market.CityMartlock:     {X: 200, Y: 700, Color: "#60a5fa", Label: "Martlock"},
	market.CityCaerleon:     {X: 500, Y: 500, Color: "#ef4444", Label: "Caerleon"},
	market.CityBlackMarket:  {X: 515, Y: 485, Color: "#1e293b", Label: "Black Market"},
}

// BuildPlan resolves a route between two cities.
func BuildPlan(from, to string) (Plan, error) {
	fp, ok := cityPoints[from]
	if !ok {
		return Plan{}, fmt.Errorf("routes: unknown city %q", from)
	}
	tp, ok := cityPoints[to]
	if !ok {
		return Plan{}, fmt.Errorf("routes: unknown city %q", to)
	}
	if from == to {
		return Plan{}, fmt.Errorf("routes: origin and destination are the same city")
	}

	red := market.IsRiskyCity(from) || market.IsRiskyCity(to)
	risk := "safe (blue/yellow zones)"
	if red {
		risk = "extreme (kill zone)"
	}
	return Plan{
		From:      from,
		To:        to,
		FromPoint: fp,
		ToPoint:   tp,
		RedZone:   red,
		Risk:      risk,
	}, nil
}
