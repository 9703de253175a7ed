// Package mmap provides read-only memory-mapped access to input files.
//
// Plain corpus files are mapped instead of read so that large feeds are
// scanned without copying them through kernel buffers:
//
//	f, err := mmap.Open("feeds/nprhealth.txt")
//	if err != nil { ... }
//	defer f.Close()
//
//	f.Advise(mmap.AccessSequential)
//	scanner := bufio.NewScanner(f.Reader())
//
// Unix uses mmap(2)/madvise(2); Windows uses CreateFileMapping/MapViewOfFile
// (Advise is a no-op there). Callers must not touch Bytes() after Close().
package mmap
