// Package report implements the tenant-side reporting queries and the
// shaping of their results into API payloads.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData signals that a dimensional query matched no rows. Time
// series endpoints return empty containers instead; this asymmetry is
// part of the API contract.
var ErrNoData = errors.New("report: no data for the requested window")

// Service runs reporting queries against a tenant database handed in
// per call. It holds no connection state of its own.
type Service struct {
	loc *time.Location
	now func() time.Time
}

func NewService(loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{loc: loc, now: time.Now}
}

func (s *Service) today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// BigNumbers aggregates revenue from the receipt fact table and cost,
// toll, volume and shipment measures from the freight fact table, for
// the requested window and its prior-year counterpart, and derives the
// ticket, margin and year-over-year figures. It always produces a
// one-element slice so the dashboard renders zeros instead of erroring
// on quiet periods.
func (s *Service) BigNumbers(ctx context.Context, db *sql.DB, f FiltersBI) ([]BigNumbers, error) {
	start, end := f.Window(s.today())
	priorStart, priorEnd := f.PriorYearWindow(s.today())

	frag, filterArgs := BuildPredicate(f, bigNumbersColumns)

	revenue, err := s.revenueTotal(ctx, db, frag, start, end, filterArgs)
	if err != nil {
		return nil, err
	}
	priorRevenue, err := s.revenueTotal(ctx, db, frag, priorStart, priorEnd, filterArgs)
	if err != nil {
		return nil, err
	}
	cur, err := s.freightTotals(ctx, db, frag, start, end, filterArgs)
	if err != nil {
		return nil, err
	}
	prior, err := s.freightTotals(ctx, db, frag, priorStart, priorEnd, filterArgs)
	if err != nil {
		return nil, err
	}

	return []BigNumbers{{
		Revenue:      revenue,
		RevenueYoY:   yoyDelta(revenue, priorRevenue),
		Volume:       cur.volume,
		VolumeYoY:    yoyDelta(cur.volume, prior.volume),
		Shipments:    cur.shipments,
		ShipmentsYoY: yoyDelta(float64(cur.shipments), float64(prior.shipments)),
		AvgTicket:    avgTicket(revenue, cur.invoiced),
		AvgTicketYoY: avgTicketYoY(revenue, cur.invoiced, priorRevenue, prior.invoiced),
		Cost:         cur.cost,
		CostYoY:      yoyDelta(cur.cost, prior.cost),
		Toll:         cur.toll,
		TollYoY:      yoyDelta(cur.toll, prior.toll),
		Margin:       margin(revenue, cur.cost),
		MarginYoY:    marginYoY(revenue, cur.cost, priorRevenue, prior.cost),
	}}, nil
}

func (s *Service) revenueTotal(ctx context.Context, db *sql.DB, frag string, start, end time.Time, filterArgs []any) (float64, error) {
	args := append([]any{start, end}, filterArgs...)
	var total decimal.NullDecimal
	err := db.QueryRowContext(ctx, fmt.Sprintf(queryRevenueTotal, frag), args...).Scan(&total)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("revenue total: %w", err)
	}
	return nullDecimalFloat(total), nil
}

type freightTotals struct {
	cost      float64
	toll      float64
	volume    float64
	shipments int64
	invoiced  int64
}

func (s *Service) freightTotals(ctx context.Context, db *sql.DB, frag string, start, end time.Time, filterArgs []any) (freightTotals, error) {
	args := append([]any{start, end}, filterArgs...)
	var (
		cost, toll decimal.NullDecimal
		volume     sql.NullFloat64
		shipments  sql.NullInt64
		invoiced   sql.NullInt64
	)
	err := db.QueryRowContext(ctx, fmt.Sprintf(queryFreightTotals, frag), args...).
		Scan(&cost, &toll, &volume, &shipments, &invoiced)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return freightTotals{}, fmt.Errorf("freight totals: %w", err)
	}
	return freightTotals{
		cost:      nullDecimalFloat(cost),
		toll:      nullDecimalFloat(toll),
		volume:    volume.Float64,
		shipments: shipments.Int64,
		invoiced:  invoiced.Int64,
	}, nil
}

// MonthYearKPI returns volume, shipment and revenue totals per month
// for the trailing two calendar years, keyed by year then month name.
// An empty result is a valid answer and maps to an empty object.
func (s *Service) MonthYearKPI(ctx context.Context, db *sql.DB, f FiltersBI) (MonthYearSeries, error) {
	frag, args := BuildPredicate(f, timeSeriesColumns)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(queryMonthYear, frag), args...)
	if err != nil {
		return nil, fmt.Errorf("month year kpi: %w", err)
	}
	defer rows.Close()

	out := MonthYearSeries{}
	for rows.Next() {
		var (
			year     sql.NullInt64
			month    sql.NullString
			monthNum sql.NullInt64
			volume   sql.NullFloat64
			ship     sql.NullInt64
			revenue  decimal.NullDecimal
		)
		if err := rows.Scan(&year, &month, &monthNum, &volume, &ship, &revenue); err != nil {
			return nil, fmt.Errorf("month year kpi: %w", err)
		}
		yearKey := "0"
		if year.Valid {
			yearKey = strconv.FormatInt(year.Int64, 10)
		}
		monthKey := "Indefinido"
		if month.Valid {
			monthKey = month.String
		}
		if out[yearKey] == nil {
			out[yearKey] = map[string]SeriesPoint{}
		}
		out[yearKey][monthKey] = SeriesPoint{
			Volume:    volume.Float64,
			Shipments: ship.Int64,
			Revenue:   nullDecimalFloat(revenue),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("month year kpi: %w", err)
	}
	return out, nil
}

// CurrentMonthDailyKPI returns the same measures bucketed by day of
// the current calendar month. Empty results map to an empty object.
func (s *Service) CurrentMonthDailyKPI(ctx context.Context, db *sql.DB, f FiltersBI) (DailySeries, error) {
	frag, args := BuildPredicate(f, timeSeriesColumns)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(queryCurrentMonthDaily, frag), args...)
	if err != nil {
		return nil, fmt.Errorf("daily kpi: %w", err)
	}
	defer rows.Close()

	out := DailySeries{}
	for rows.Next() {
		var (
			day     sql.NullInt64
			volume  sql.NullFloat64
			ship    sql.NullInt64
			revenue decimal.NullDecimal
		)
		if err := rows.Scan(&day, &volume, &ship, &revenue); err != nil {
			return nil, fmt.Errorf("daily kpi: %w", err)
		}
		dayKey := "0"
		if day.Valid {
			dayKey = strconv.FormatInt(day.Int64, 10)
		}
		out[dayKey] = SeriesPoint{
			Volume:    volume.Float64,
			Shipments: ship.Int64,
			Revenue:   nullDecimalFloat(revenue),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily kpi: %w", err)
	}
	return out, nil
}

// BranchKPI ranks branches by revenue over the operation window.
func (s *Service) BranchKPI(ctx context.Context, db *sql.DB, f FiltersBI) (DimensionSeries, error) {
	return s.dimensionKPI(ctx, db, f, queryByBranch, dimensionColumns)
}

// RegionKPI ranks regions by revenue over the operation window.
func (s *Service) RegionKPI(ctx context.Context, db *sql.DB, f FiltersBI) (DimensionSeries, error) {
	return s.dimensionKPI(ctx, db, f, queryByRegion, dimensionColumns)
}

// CityKPI ranks cities (keyed "cidade-UF") by revenue.
func (s *Service) CityKPI(ctx context.Context, db *sql.DB, f FiltersBI) (DimensionSeries, error) {
	return s.dimensionKPI(ctx, db, f, queryByCity, timeSeriesColumns)
}

func (s *Service) dimensionKPI(ctx context.Context, db *sql.DB, f FiltersBI, query string, cols []ColumnSpec) (DimensionSeries, error) {
	start, end := f.Window(s.today())
	frag, filterArgs := BuildPredicate(f, cols)
	args := append([]any{start, end}, filterArgs...)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(query, frag), args...)
	if err != nil {
		return nil, fmt.Errorf("dimension kpi: %w", err)
	}
	defer rows.Close()

	out := DimensionSeries{}
	for rows.Next() {
		var (
			key     sql.NullString
			volume  sql.NullFloat64
			ship    sql.NullInt64
			revenue decimal.NullDecimal
		)
		if err := rows.Scan(&key, &volume, &ship, &revenue); err != nil {
			return nil, fmt.Errorf("dimension kpi: %w", err)
		}
		if !key.Valid {
			continue
		}
		out[key.String] = SeriesPoint{
			Volume:    volume.Float64,
			Shipments: ship.Int64,
			Revenue:   nullDecimalFloat(revenue),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dimension kpi: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// ClientKPI ranks clients by received revenue.
func (s *Service) ClientKPI(ctx context.Context, db *sql.DB, f FiltersBI) (RevenueSeries, error) {
	return s.revenueKPI(ctx, db, f, queryByClient)
}

// ProductKPI ranks products by received revenue.
func (s *Service) ProductKPI(ctx context.Context, db *sql.DB, f FiltersBI) (RevenueSeries, error) {
	return s.revenueKPI(ctx, db, f, queryByProduct)
}

func (s *Service) revenueKPI(ctx context.Context, db *sql.DB, f FiltersBI, query string) (RevenueSeries, error) {
	start, end := f.Window(s.today())
	frag, filterArgs := BuildPredicate(f, revenueColumns)
	args := append([]any{start, end}, filterArgs...)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(query, frag), args...)
	if err != nil {
		return nil, fmt.Errorf("revenue kpi: %w", err)
	}
	defer rows.Close()

	out := RevenueSeries{}
	for rows.Next() {
		var (
			key     sql.NullString
			revenue decimal.NullDecimal
		)
		if err := rows.Scan(&key, &revenue); err != nil {
			return nil, fmt.Errorf("revenue kpi: %w", err)
		}
		if !key.Valid {
			continue
		}
		out[key.String] = RevenuePoint{Revenue: nullDecimalFloat(revenue)}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("revenue kpi: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// InvoiceTable lists raw invoice rows over the receipt window.
func (s *Service) InvoiceTable(ctx context.Context, db *sql.DB, f FiltersBI) ([]InvoiceRow, error) {
	start, end := f.Window(s.today())
	frag, filterArgs := BuildPredicate(f, revenueColumns)
	args := append([]any{start, end}, filterArgs...)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(queryInvoices, frag), args...)
	if err != nil {
		return nil, fmt.Errorf("invoice table: %w", err)
	}
	defer rows.Close()

	var out []InvoiceRow
	for rows.Next() {
		var (
			number, year, branch sql.NullString
			client, city, state  sql.NullString
			product              sql.NullString
			receipt              sql.NullTime
			revenue              decimal.NullDecimal
		)
		if err := rows.Scan(&number, &year, &receipt, &revenue, &branch, &client, &city, &state, &product); err != nil {
			return nil, fmt.Errorf("invoice table: %w", err)
		}
		row := InvoiceRow{
			InvoiceNumber: nullString(number),
			InvoiceYear:   nullString(year),
			Revenue:       nullDecimalFloat(revenue),
			Branch:        nullString(branch),
			Client:        nullString(client),
			City:          nullString(city),
			StateCode:     nullString(state),
			Product:       nullString(product),
		}
		if receipt.Valid {
			d := receipt.Time.Format("2006-01-02")
			row.ReceiptDate = &d
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("invoice table: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

func nullDecimalFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	f, _ := d.Decimal.Float64()
	return f
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
