// Package targetfs provides the filesystem capability the injection engine
// works through.
//
// Every path handed to an FS is slash-separated and relative to the FS root
// (the injection target). NewOS roots an FS at a real directory; NewBilly
// adapts any go-billy filesystem, which tests use with memfs.
package targetfs
