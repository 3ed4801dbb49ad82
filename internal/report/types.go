package report

// BigNumbers is the consolidated KPI card for the dashboard header.
// Every *_ano_anterior field is a year-over-year percentage delta, not
// an absolute prior value.
type BigNumbers struct {
	Revenue      float64 `json:"faturamento"`
	RevenueYoY   float64 `json:"faturamento_ano_anterior"`
	Volume       float64 `json:"volumes"`
	VolumeYoY    float64 `json:"volumes_ano_anterior"`
	Shipments    int64   `json:"embarques"`
	ShipmentsYoY float64 `json:"embarques_ano_anterior"`
	AvgTicket    float64 `json:"ticket_medio"`
	AvgTicketYoY float64 `json:"ticket_medio_ano_anterior"`
	Cost         float64 `json:"custos"`
	CostYoY      float64 `json:"custos_ano_anterior"`
	Toll         float64 `json:"pedagios"`
	TollYoY      float64 `json:"pedagios_ano_anterior"`
	Margin       float64 `json:"margem"`
	MarginYoY    float64 `json:"margem_ano_anterior"`
}

// SeriesPoint is one bucket of a time or dimension series.
type SeriesPoint struct {
	Volume    float64 `json:"volume"`
	Shipments int64   `json:"embarques"`
	Revenue   float64 `json:"faturamento"`
}

// RevenuePoint is a revenue-only bucket (client and product rankings).
type RevenuePoint struct {
	Revenue float64 `json:"faturamento"`
}

// MonthYearSeries maps year -> month name -> totals.
type MonthYearSeries map[string]map[string]SeriesPoint

// DailySeries maps day-of-month -> totals for the current month.
type DailySeries map[string]SeriesPoint

// DimensionSeries maps a dimension key (branch, region, city) to
// totals, already ordered by revenue at the query level; map encoding
// loses that order, clients re-sort by value.
type DimensionSeries map[string]SeriesPoint

// RevenueSeries maps a dimension key to revenue only.
type RevenueSeries map[string]RevenuePoint

// InvoiceRow is one row of the billing table. Text columns surface as
// pointers so SQL NULL round-trips as JSON null.
type InvoiceRow struct {
	InvoiceNumber *string `json:"nrofatura"`
	InvoiceYear   *string `json:"anofatura"`
	ReceiptDate   *string `json:"datarecbto"`
	Revenue       float64 `json:"faturamento"`
	Branch        *string `json:"filial"`
	Client        *string `json:"cliente"`
	City          *string `json:"cidade"`
	StateCode     *string `json:"coduf"`
	Product       *string `json:"produto"`
}
