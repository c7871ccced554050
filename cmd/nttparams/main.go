// Command nttparams derives the transform constants of an NTT-friendly
// modulus: the 2N-th root of unity (the smallest one unless supplied),
// its inverse, the scale factor N^-1 and the Barrett and Montgomery
// datapath constants.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/bits"
	"os"

	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/zq"
)

type constants struct {
	LogN   int    `json:"logn"`
	N      int    `json:"n"`
	Q      uint64 `json:"q"`
	QBits  int    `json:"q_bits"`
	Psi    uint64 `json:"psi"`
	PsiInv uint64 `json:"psi_inv"`
	NInv   uint64 `json:"n_inv"`
	Omega  uint64 `json:"omega"`

	BarrettK  int    `json:"barrett_k"`
	BarrettMu uint64 `json:"barrett_mu"`

	MontgomeryK      int    `json:"montgomery_k"`
	MontgomeryR      uint64 `json:"montgomery_r_mod_q"`
	MontgomeryQPrime uint64 `json:"montgomery_q_prime"`
	MontgomeryR2     uint64 `json:"montgomery_r2"`
}

func main() {
	var (
		logN   = flag.Int("logn", 8, "log2 of the transform length")
		q      = flag.Uint64("q", 8380417, "NTT-friendly prime modulus")
		psi    = flag.Uint64("psi", 0, "2N-th root of unity (0 = search for the smallest)")
		asJSON = flag.Bool("json", false, "emit JSON instead of text")
	)
	flag.Parse()

	params, err := ntt.ParametersLiteral{LogN: *logN, Q: *q, Psi: *psi}.Compile()
	if err != nil {
		log.Fatalf("compile parameters: %v", err)
	}

	c := constants{
		LogN:   params.LogN(),
		N:      params.N(),
		Q:      params.Q(),
		QBits:  bits.Len64(params.Q()),
		Psi:    params.Psi(),
		PsiInv: params.PsiInv(),
		NInv:   params.NInv(),
		Omega:  params.Omega(),
	}
	c.BarrettK, c.BarrettMu = zq.BarrettConstants(params.Q())
	c.MontgomeryK, c.MontgomeryR, c.MontgomeryQPrime, c.MontgomeryR2 = zq.MontgomeryConstants(params.Q())

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}

	fmt.Printf("N      = %d (logn = %d)\n", c.N, c.LogN)
	fmt.Printf("Q      = %d (%d bits)\n", c.Q, c.QBits)
	fmt.Printf("psi    = %d\n", c.Psi)
	fmt.Printf("psi^-1 = %d\n", c.PsiInv)
	fmt.Printf("N^-1   = %d\n", c.NInv)
	fmt.Printf("omega  = %d\n", c.Omega)
	fmt.Println()
	fmt.Printf("barrett:    k = %d  mu = %d\n", c.BarrettK, c.BarrettMu)
	fmt.Printf("montgomery: k = %d  r mod q = %d  q' = %d  r^2 = %d\n", c.MontgomeryK, c.MontgomeryR, c.MontgomeryQPrime, c.MontgomeryR2)
}
