// Package stroke converts stroked polylines into fillable polygons.
//
// Every segment becomes a quad, every join and cap becomes a small convex
// polygon. All pieces are emitted with the same orientation so that filling
// the result with the nonzero rule yields their union.
package stroke
