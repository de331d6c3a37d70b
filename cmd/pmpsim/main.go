// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/rvpmp/pmp"
	"github.com/ezrec/rvpmp/script"
)

func main() {
	var xlen int
	var priv string
	var dump bool
	var verbose bool

	flag.IntVar(&xlen, "x", 64, "XLEN of the hart (32 or 64)")
	flag.StringVar(&priv, "p", "machine", "Initial privilege level")
	flag.BoolVar(&dump, "d", false, "Dump the PMP registers on exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if !pmp.Xlen(xlen).Valid() {
		log.Fatalf("%v: unsupported XLEN %d", os.Args[0], xlen)
	}

	scripts := flag.Args()
	if len(scripts) == 0 {
		scripts = []string{"-"}
	}

	sc := script.NewScript(pmp.NewPmp(pmp.Xlen(xlen)))
	sc.Verbose = verbose

	_, err := sc.Exec("-p", fmt.Sprintf("priv(%q)\n", priv))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	for _, name := range scripts {
		if name == "-" {
			_, err = sc.Exec("<stdin>", os.Stdin)
		} else {
			var inf *os.File
			inf, err = os.Open(name)
			if err != nil {
				log.Fatalf("%v: %v", name, err)
			}
			_, err = sc.Exec(name, inf)
			inf.Close()
		}
		if err != nil {
			log.Fatal(err)
		}
	}

	if dump {
		fmt.Print(sc.Pmp.String())
	}
}
