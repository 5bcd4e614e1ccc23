package domain

type SummaryLine struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type Summary struct {
	Lines []SummaryLine `json:"lines"`
	Units int           `json:"units"`
	Total float64       `json:"total"`
}

func Summarize(c Cart) Summary {
	s := Summary{Lines: make([]SummaryLine, 0, len(c))}
	for _, item := range c {
		lineTotal := item.Price * float64(item.Quantity)
		s.Lines = append(s.Lines, SummaryLine{
			ID:        item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			LineTotal: lineTotal,
		})
		s.Units += item.Quantity
		s.Total += lineTotal
	}
	return s
}
