// Command nttrom emits the twiddle ROM image of a parameter set, either
// as a $readmemh text file or as the framed binary encoding.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/romimage"
	"github.com/orhosko/tiny-ntt/zq"
)

func main() {
	var (
		logN      = flag.Int("logn", 8, "log2 of the transform length")
		q         = flag.Uint64("q", 8380417, "NTT-friendly prime modulus")
		psi       = flag.Uint64("psi", 0, "2N-th root of unity (0 = search for the smallest)")
		reduction = flag.String("reduction", "barrett", "reduction strategy: simple|barrett|montgomery")
		format    = flag.String("format", "mem", "output format: mem|bin")
		outPath   = flag.String("out", "", "output path (default twiddle.mem or twiddle.rom)")
	)
	flag.Parse()

	red, err := zq.ParseReductionType(*reduction)
	if err != nil {
		log.Fatalf("parse reduction: %v", err)
	}

	params, err := ntt.ParametersLiteral{LogN: *logN, Q: *q, Psi: *psi, Reduction: red}.Compile()
	if err != nil {
		log.Fatalf("compile parameters: %v", err)
	}

	img := romimage.NewImage(params)

	path := *outPath
	if path == "" {
		path = "twiddle.mem"
		if *format == "bin" {
			path = "twiddle.rom"
		}
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}

	switch *format {
	case "mem":
		err = img.WriteMem(f)
	case "bin":
		_, err = img.WriteTo(f)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", path, err)
	}

	fmt.Printf("wrote %s: N=%d Q=%d psi=%d reduction=%v (%d words)\n",
		path, params.N(), params.Q(), params.Psi(), params.Reduction(), 2*params.N()+1)
}
