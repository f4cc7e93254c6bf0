// Package dat reads and writes the bundled .dat asset archives used by the
// TimeLeap engine, including the position-dependent byte transform applied
// to every payload.
//
// An archive is three regions, little-endian throughout:
//   - Data region: concatenated cipher-transformed payloads
//   - Index region: one 80-byte entry per file, nibble-swapped as a whole
//   - Trailer: 4-byte file count
//
// [Parse] opens an archive held in memory, [Build] assembles one, and
// [Create] and [Archive.Extract] bridge to a directory tree on disk.
// [EncodeBuffer] and [DecodeBuffer] expose the raw payload transform.
//
// # Round-trip caveat
//
// The transform derives its stage order from the first byte of the buffer it
// is handed, and unconditionally flips that byte's high bit. Encoder and
// decoder therefore never agree on the mode, and a payload of 10 bytes or
// more survives a pack/unpack cycle only if the bytes at stream positions
// congruent to 9 mod 12 commute under the transform's negation and XOR
// stages. This is faithful to the original tools and is deliberately not
// "fixed" here: existing archives depend on the exact bit pattern. Callers
// packing new data that must survive extraction should verify it does, e.g.
// by decoding the built archive once.
package dat
