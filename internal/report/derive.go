package report

// yoyDelta is the year-over-year growth of cur against prior as a
// percentage. A zero prior period yields 0 rather than a division
// error or an infinite delta.
func yoyDelta(cur, prior float64) float64 {
	if prior == 0 {
		return 0
	}
	return (cur/prior - 1) * 100
}

// avgTicket is revenue divided by the invoiced shipment count.
func avgTicket(revenue float64, invoiced int64) float64 {
	if invoiced == 0 {
		return 0
	}
	return revenue / float64(invoiced)
}

// avgTicketYoY compares the two periods' average tickets. Any zero
// denominator in either period collapses the delta to 0.
func avgTicketYoY(revenue float64, invoiced int64, priorRevenue float64, priorInvoiced int64) float64 {
	if invoiced == 0 || priorInvoiced == 0 || priorRevenue == 0 {
		return 0
	}
	cur := revenue / float64(invoiced)
	prior := priorRevenue / float64(priorInvoiced)
	return (cur/prior - 1) * 100
}

// margin is (revenue - cost) / revenue as a percentage.
func margin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue * 100
}

// marginYoY compares the two periods' margins, guarding every division.
func marginYoY(revenue, cost, priorRevenue, priorCost float64) float64 {
	if revenue == 0 || priorRevenue == 0 {
		return 0
	}
	prior := (priorRevenue - priorCost) / priorRevenue
	if prior == 0 {
		return 0
	}
	cur := (revenue - cost) / revenue
	return (cur/prior - 1) * 100
}
