// Package dataset loads the six raw e-commerce tables and joins them into
// the denormalized master record set the analytics layer consumes.
//
// The Loader reads CSV files (or a single Excel workbook) with type
// coercion and schema validation; a missing required column is a fatal
// SchemaError. The Builder applies the join rules: order items inner-join
// orders, everything else left-joins with documented null fills, payments
// aggregate to one total per order and reviews dedupe to at most one per
// order. Join anomalies are counted in the QualityReport instead of
// failing the build.
//
// Tables and the MasterSet are immutable after construction; concurrent
// readers need no synchronization.
package dataset
