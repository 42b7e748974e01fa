// Package convertly provides a registry-and-resolution conversion
// engine: an open, pluggable set of conversion rules (direct
// converters, converter factories, conditional and generic converters)
// resolved per (source, target) type-descriptor pair with hierarchy
// based specificity, structural element-wise conversion for arrays,
// slices, sets, maps and push sequences, and last-resort fallbacks.
// Resolution outcomes are memoized and invalidated on registry
// mutation.
package convertly
