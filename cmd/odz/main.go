// Command odz compresses and decompresses files in the ODZ format.
//
// Usage:
//
//	odz c <input> <output>
//	odz d <input> <output>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/odzcodec/odz"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: odz c|d <input> <output>")
}

func main() {
	if len(os.Args) != 4 {
		usage()
		os.Exit(2)
	}

	mode, inPath, outPath := os.Args[1], os.Args[2], os.Args[3]

	in, err := os.Open(inPath)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal(err)
	}

	switch mode {
	case "c":
		err = odz.Compress(in, out)
	case "d":
		err = odz.Decompress(in, out)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		out.Close()
		log.Fatal(err)
	}

	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
}
