// Package sanitizer provides the canonical comparable forms used when matching
// user input against backend data.
//
// All normalization functions are idempotent. Invalid input yields an empty
// string rather than an error.
//
// Normalization includes:
//   - Text (street names, cities, first and last names): Unicode decomposition,
//     combining marks removed, lowercased, trimmed - "  Nîmes " becomes "nimes"
//   - Numbers (house numbers, postal codes): text normalization plus removal of
//     inner whitespace - "30 000" becomes "30000"
//   - Phone numbers: E.164 format (+[country][number]), French numbers first
//
// The same normalization must be applied to the stored value and to the query
// value before comparing them.
package sanitizer
