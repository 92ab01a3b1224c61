package entity

type CarSpecs struct {
	Engine          string `json:"engine" bson:"engine"`
	Transmission    string `json:"transmission" bson:"transmission"`
	SeatingCapacity int    `json:"seating_capacity" bson:"seating_capacity"`
	FuelType        string `json:"fuel_type" bson:"fuel_type"`
	Power           string `json:"power" bson:"power"`
	Torque          string `json:"torque" bson:"torque"`
}

// CarModel is one sellable inventory item. The chat side only reads
// these; mutation happens through the admin CRUD API.
type CarModel struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Price       float64  `json:"price" bson:"price"`
	DpPercent   float64  `json:"dp_percent" bson:"dp_percent"`
	Type        string   `json:"type" bson:"type"`
	Description string   `json:"description" bson:"description"`
	ImageUrl    string   `json:"image_url" bson:"image_url"`
	Specs       CarSpecs `json:"specs" bson:"specs"`
}
