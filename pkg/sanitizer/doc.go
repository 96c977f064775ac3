// Package sanitizer provides the per-field normalizers for raw sales data.
//
// All normalization functions are pure and idempotent - applying them to an
// already cleaned value returns it unchanged. They never return errors and
// never panic: any input that cannot be normalized (nil, wrong type,
// unparseable text, out-of-range number, impossible calendar date) yields an
// Invalid result, which is distinct from every legitimate value including zero.
//
// The package is safe for concurrent use; compiled patterns are package-level
// read-only values and configuration is passed per call.
//
// Normalization includes:
//   - Gender: typo-tolerant mapping to "F" / "M" ("fem3le" becomes "F", "m@le" becomes "M")
//   - Age: leading zeros stripped, integer in range, canonical text ("007" becomes "7")
//   - Dates: "/" or "-" separated month/day/year, day-first input recovered, formatted MM-DD-YYYY
//   - Order dates: same as dates with the year replaced by a configured constant
//   - Quantity: number words ("twenty one") or embedded digits ("5 units"), integer in range
package sanitizer
