package entity

// Quotation is a flat-rate financing estimate for one car.
type Quotation struct {
	Car         CarModel `json:"car"`
	DpPercent   float64  `json:"dp_percent"`
	Years       int      `json:"years"`
	Downpayment float64  `json:"downpayment"`
	LoanAmount  float64  `json:"loan_amount"`
	Interest    float64  `json:"interest"`
	Monthly     float64  `json:"monthly"`
}

// QuickReply is one tappable reply option attached to a text message.
type QuickReply struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// CardButton is a postback button on a carousel card.
type CardButton struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Card is one element of a generic-template carousel.
type Card struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	ImageUrl string       `json:"image_url"`
	Buttons  []CardButton `json:"buttons"`
}
