// Package asset models a comparison asset: one reference video paired with a
// distorted rendition of it, plus the metadata overrides that describe how the
// pair should be compared.
//
// Every derived property (resolution, frame range, duration, bitrate, sampling
// format, canonical name, working-file paths) is exposed as a fallible accessor
// that resolves its value through an ordered list of fallback tiers. Nothing is
// validated at construction time; an incomplete metadata mapping only fails when
// a property that depends on the missing keys is requested.
//
// Apart from the file-size lookup used for bitrate and the workdir token minted
// in New, accessors are pure and an Asset is safe for concurrent reads.
package asset
