// Package entrystore provides fixed-stride packed-record storage for the
// point data a tree indexes. The on-disk encoding is opaque: callers
// describe their own field layout (names, element types, byte offsets)
// and entrystore only interprets the first three slots, which must be
// the record's unit vector (x, y, z) in that order.
//
// Concurrent readers are safe. There is no writer-side locking: the
// construction pipeline is the only writer and it runs before any
// reader opens the file.
package entrystore
