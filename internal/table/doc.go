// Package table implements uniformly sampled potential/force tables with
// cubic Hermite interpolation.
//
// Each sample stores a quad of coefficients so a lookup yields both the
// energy and the force scale in one pass, without re-deriving spline
// coefficients. Accuracy is set by the sample spacing: the builders accept
// pre-agreed interpolation error against the analytic potential in exchange
// for decoupling per-pair cost from the potential's complexity.
package table
