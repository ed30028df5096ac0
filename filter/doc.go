// Package filter selects deserialized values with expr-lang expressions.
//
// Fields of mapping items are variables, so `status == "available"` matches
// a pet whose status field is "available". Models are exposed through their
// JSON field names. The item itself is `it`, which lets scalar collections
// be filtered with expressions like `it > 10`.
//
// Helper functions:
//
//   - icontains, hasPrefix, hasSuffix: case-insensitive string tests; the
//     expr operators contains, startsWith and endsWith stay case-sensitive
//   - lower, upper
//   - now, daysAgo(n), parseDate(s), daysSince(t), before(t, ref), after(t, ref)
//   - has(field): the item has the field
//   - hasTag(name): the item's tags contain name (strings or {name} objects)
//
// Compiled filters are cached by expression.
package filter
