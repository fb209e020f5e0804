// Package varint implements the self-delimiting unsigned integer codec
// shared by EntryStore's index and TreeCompress's child-offset links.
package varint
