// Package zipwrite produces ZIP64 archives in a single streaming pass.
//
// Members are compressed with a built-in DEFLATE encoder (fixed Huffman
// codes, 32 KiB sliding window) and written straight to the output as
// they arrive: nothing is buffered beyond the encoder's window, the
// output is never read back or seeked, and sizes need not be known up
// front. Every member carries a data descriptor and a ZIP64 central
// directory entry, so archives and individual members may exceed 4 GiB.
//
// The encoder favors simplicity over ratio; output is typically 20-50%
// larger than an optimizing DEFLATE implementation would produce.
//
// # Quick Start
//
// Write an archive to a file:
//
//	a, err := zipwrite.Create("envelope.zip")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	if err := a.Begin("letter.txt"); err != nil {
//	    return err
//	}
//	if _, err := a.WriteString("hello, world!"); err != nil {
//	    return err
//	}
//	return a.Finish()
//
// Or stream to any io.Writer:
//
//	a, err := zipwrite.New(conn)
//
// An Archive must not be used from multiple goroutines concurrently;
// distinct Archives are independent.
package zipwrite
