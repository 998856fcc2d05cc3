// Package scoring turns indicator values into bias scores.
//
// A weight document groups indicator keys into named pillars. For every
// component whose indicator exists, value*weight is added to the pillar's
// running total as a float while the breakdown records the contribution
// truncated toward zero. The pillar totals are summed, clamped to
// [-bound, bound] and truncated once at the end, so the displayed components
// of a pillar may not add up exactly to what the total was built from.
package scoring
