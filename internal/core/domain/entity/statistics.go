package entity

// Statistics is the derived dashboard report. It is computed on demand from
// full collection scans and never persisted.
type Statistics struct {
	TotalOrders    int    `json:"totalOrders"`
	TotalSales     string `json:"totalSales"`
	TotalProducts  int    `json:"totalProducts"`
	TotalCustomers int    `json:"totalCustomers"`
	PendingOrders  int    `json:"pendingOrders"`
}
