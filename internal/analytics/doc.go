// Package analytics implements the business metric catalog computed over the
// denormalized master record set.
//
// # Core Components
//
// The catalog is split into five independent metric families:
//
//  1. Revenue: totals, order counts, average order value, monthly trend
//  2. Products: per-category revenue ranking with shares and top-N extraction
//  3. Geography: per-state and per-city revenue and order counts
//  4. Experience: review scores, delivery times and their correlation
//  5. Operations: fulfillment and cancellation rates over all orders
//
// # Architecture
//
//   - types.go: result types, the Ratio sentinel and the Boundary date range
//   - period.go: current vs automatically derived comparison window split
//   - revenue.go, product.go, geography.go, experience.go, operations.go:
//     one pure function per metric family
//   - stats.go: mean, median and Pearson correlation helpers
//   - summary.go: the Summarizer merging families into one executive summary
//
// # Semantics
//
// Revenue, product, geography and experience metrics exclude canceled and
// returned orders by policy; operational metrics include them because they
// measure process health rather than revenue. Every ratio with a zero or
// absent denominator is reported as the explicit Ratio sentinel (JSON null),
// never as zero and never as a panic.
//
// All functions are pure over their inputs: no caching, no shared state, and
// identical inputs always produce identical output.
package analytics
