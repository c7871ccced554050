// Package romimage generates and parses twiddle ROM initialization images.
//
// The text format is $readmemh compatible: comment header lines followed
// by one zero-padded hex word per line, with the forward twiddles at
// addresses [0, N), the inverse twiddles at [N, 2N), and the scale
// constant at 2N. The binary format frames the same contents.
package romimage

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"github.com/tuneinsight/lattigo/v6/utils/buffer"

	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/zq"
)

// Image holds the ROM contents of one parameter set, with every word
// prepared exactly as the engine consumes it.
type Image struct {
	LogN      int
	Q         uint64
	Psi       uint64
	Reduction zq.ReductionType

	Forward []uint64
	Inverse []uint64
	Scale   uint64
}

// NewImage builds the ROM image of params.
func NewImage(params ntt.Parameters) *Image {
	table := ntt.NewTwiddleTable(params, params.Reducer())
	return &Image{
		LogN:      params.LogN(),
		Q:         params.Q(),
		Psi:       params.Psi(),
		Reduction: params.Reduction(),

		Forward: table.Fwd,
		Inverse: table.Inv,
		Scale:   table.NInv,
	}
}

// N returns the transform length.
func (img *Image) N() int {
	return 1 << img.LogN
}

// WordDigits returns the number of hex digits per word in the text format.
func (img *Image) WordDigits() int {
	return (bits.Len64(img.Q) + 3) / 4
}

// BinarySize returns the size of the binary encoding in bytes.
func (img *Image) BinarySize() int {
	return 5*8 + 8*2*img.N()
}

// WriteMem writes the image in $readmemh format.
func (img *Image) WriteMem(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// logn=%d q=%d psi=%d reduction=%v\n", img.LogN, img.Q, img.Psi, img.Reduction)
	fmt.Fprintf(bw, "// [0, %[1]d): forward, [%[1]d, %d): inverse, %d: scale\n", img.N(), 2*img.N(), 2*img.N())

	digits := img.WordDigits()
	for _, c := range img.Forward {
		fmt.Fprintf(bw, "%0*x\n", digits, c)
	}
	for _, c := range img.Inverse {
		fmt.Fprintf(bw, "%0*x\n", digits, c)
	}
	fmt.Fprintf(bw, "%0*x\n", digits, img.Scale)

	return bw.Flush()
}

// ReadMem parses an image in the format written by WriteMem.
func ReadMem(r io.Reader) (*Image, error) {
	img := &Image{LogN: -1}

	var words []uint64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":

		case strings.HasPrefix(line, "//"):
			if img.LogN >= 0 {
				continue
			}
			var (
				logN      int
				q, psi    uint64
				reduction string
			)
			if _, err := fmt.Sscanf(line, "// logn=%d q=%d psi=%d reduction=%s", &logN, &q, &psi, &reduction); err != nil {
				continue
			}
			red, err := zq.ParseReductionType(reduction)
			if err != nil {
				return nil, err
			}
			img.LogN, img.Q, img.Psi, img.Reduction = logN, q, psi, red

		default:
			c, err := strconv.ParseUint(line, 16, 64)
			if err != nil {
				return nil, fmt.Errorf("romimage: bad word %q: %w", line, err)
			}
			words = append(words, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if img.LogN < 1 || img.LogN > ntt.MaxLogN {
		return nil, fmt.Errorf("romimage: missing or bad header")
	}
	n := img.N()
	if len(words) != 2*n+1 {
		return nil, fmt.Errorf("romimage: want %d words, got %d", 2*n+1, len(words))
	}
	for _, c := range words {
		if c >= img.Q {
			return nil, fmt.Errorf("romimage: word %d out of range for modulus %d", c, img.Q)
		}
	}

	img.Forward = words[:n]
	img.Inverse = words[n : 2*n]
	img.Scale = words[2*n]

	return img, nil
}

// WriteTo implements the [io.WriterTo] interface.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	switch w := w.(type) {
	case buffer.Writer:
		var n, inc int64
		var err error

		for _, c := range []uint64{uint64(img.LogN), img.Q, img.Psi, uint64(img.Reduction)} {
			if inc, err = buffer.WriteUint64(w, c); err != nil {
				return n + inc, err
			}
			n += inc
		}

		if inc, err = buffer.WriteUint64Slice(w, img.Forward); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64Slice(w, img.Inverse); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64(w, img.Scale); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return img.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom implements the [io.ReaderFrom] interface.
func (img *Image) ReadFrom(r io.Reader) (int64, error) {
	switch r := r.(type) {
	case buffer.Reader:
		var n int64
		var inc int
		var err error

		var logN, q, psi, reduction uint64
		for _, c := range []*uint64{&logN, &q, &psi, &reduction} {
			if inc, err = buffer.ReadUint64(r, c); err != nil {
				return n + int64(inc), err
			}
			n += int64(inc)
		}

		if logN < 1 || logN > ntt.MaxLogN {
			return n, fmt.Errorf("romimage: bad LogN %d", logN)
		}

		img.LogN = int(logN)
		img.Q = q
		img.Psi = psi
		img.Reduction = zq.ReductionType(reduction)

		img.Forward = make([]uint64, img.N())
		img.Inverse = make([]uint64, img.N())

		if inc, err = buffer.ReadUint64Slice(r, img.Forward); err != nil {
			return n + int64(inc), err
		}
		n += int64(inc)

		if inc, err = buffer.ReadUint64Slice(r, img.Inverse); err != nil {
			return n + int64(inc), err
		}
		n += int64(inc)

		if inc, err = buffer.ReadUint64(r, &img.Scale); err != nil {
			return n + int64(inc), err
		}
		n += int64(inc)

		return n, nil

	default:
		return img.ReadFrom(bufio.NewReader(r))
	}
}

// ReadImage reads a binary image from r.
func ReadImage(r io.Reader) (*Image, error) {
	img := new(Image)
	if _, err := img.ReadFrom(r); err != nil {
		return nil, err
	}
	return img, nil
}
