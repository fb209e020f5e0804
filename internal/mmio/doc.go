// Package mmio memory-maps tree and entry-store files read-only and
// advises the kernel about the access pattern ExtSort's streaming merge
// and TreeCompress's sequential node scan each need. TreeSearch uses the
// read-only mapping without any advice.
package mmio
