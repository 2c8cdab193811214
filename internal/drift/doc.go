// Package drift classifies systematic timing error against an expected
// timeline (linear, stepped, progressive) and removes it when the pattern is
// correctable. Un-fittable drift is reported as random and left for manual
// review.
package drift
