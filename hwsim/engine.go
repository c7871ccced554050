package hwsim

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/orhosko/tiny-ntt/ntt"
	"github.com/orhosko/tiny-ntt/zq"
)

var (
	// ErrBusy is returned when a load or pointwise operation is issued
	// while an operation is running.
	ErrBusy = errors.New("hwsim: engine is busy")

	// ErrReentrantStart is returned when Start is issued while an
	// operation is running. The start pulse is ignored.
	ErrReentrantStart = errors.New("hwsim: start ignored while busy")
)

// Direction selects the transform direction.
type Direction int

const (
	// Forward transforms normal order to bit-reversed order.
	Forward Direction = iota
	// Inverse transforms bit-reversed order to normal order.
	Inverse
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// state is the controller state.
type state int

const (
	stateIdle state = iota
	stateCompute
	stateScale
	stateMult
	stateDone
)

// Config configures an Engine.
type Config struct {
	// Params is the compiled parameter set.
	Params ntt.Parameters

	// Parallel is the number of butterfly lanes, between 1 and N/2.
	// A lane count that does not divide N/2 leaves trailing lanes
	// masked off in the last cycle of each stage.
	Parallel int

	// CheckReduction shadows every datapath multiplication with plain
	// modular arithmetic and records divergences.
	CheckReduction bool
}

// Engine models the transform engine cycle by cycle. Coefficients are
// loaded over port A, transformed in place by Start and Step, and read
// back over port B.
type Engine struct {
	params   ntt.Parameters
	parallel int

	cyclesPerStage int
	scaleCycles    int

	reducer zq.Reducer
	checked *zq.CheckedReducer

	ram       *RAM
	rom       *twiddleROM
	butterfly butterfly

	laneValid *bitset.BitSet

	state state
	dir   Direction

	stage      int
	stageCycle int
	scaleCycle int

	multOperand []uint64

	cycles int

	wrAddr []int
	wrData []uint64
}

// NewEngine creates a new Engine.
func NewEngine(cfg Config) (*Engine, error) {
	n := cfg.Params.N()
	if cfg.Parallel < 1 || cfg.Parallel > n/2 {
		return nil, fmt.Errorf("hwsim: Parallel must be between 1 and %d", n/2)
	}

	reducer := cfg.Params.Reducer()
	var checked *zq.CheckedReducer
	if cfg.CheckReduction {
		shadow, err := zq.NewReducer(zq.ReductionSimple, cfg.Params.Q())
		if err != nil {
			return nil, err
		}
		if checked, err = zq.NewCheckedReducer(reducer, shadow); err != nil {
			return nil, err
		}
		reducer = checked
	}

	return &Engine{
		params:   cfg.Params,
		parallel: cfg.Parallel,

		cyclesPerStage: (n/2 + cfg.Parallel - 1) / cfg.Parallel,
		scaleCycles:    (n + cfg.Parallel - 1) / cfg.Parallel,

		reducer: reducer,
		checked: checked,

		ram:       NewRAM(n),
		rom:       newTwiddleROM(cfg.Params, reducer),
		butterfly: butterfly{reducer: reducer},

		laneValid: bitset.New(uint(cfg.Parallel)),

		multOperand: make([]uint64, n),

		wrAddr: make([]int, 2*cfg.Parallel),
		wrData: make([]uint64, 2*cfg.Parallel),
	}, nil
}

// Params returns the parameter set of the engine.
func (e *Engine) Params() ntt.Parameters {
	return e.params
}

// Parallel returns the number of butterfly lanes.
func (e *Engine) Parallel() int {
	return e.parallel
}

// CyclesPerStage returns the number of cycles one butterfly stage takes.
func (e *Engine) CyclesPerStage() int {
	return e.cyclesPerStage
}

// ScaleCycles returns the number of cycles one full pass over the RAM takes.
func (e *Engine) ScaleCycles() int {
	return e.scaleCycles
}

// Busy reports whether an operation is running.
func (e *Engine) Busy() bool {
	return e.state == stateCompute || e.state == stateScale || e.state == stateMult
}

// Done reports the done level. It rises in the cycle after the final
// datapath write and holds until the next accepted Start or load.
func (e *Engine) Done() bool {
	return e.state == stateDone
}

// Cycles returns the number of datapath cycles consumed by the current
// or last operation.
func (e *Engine) Cycles() int {
	return e.cycles
}

// LaneMask returns the lane-valid mask of the last executed cycle.
func (e *Engine) LaneMask() *bitset.BitSet {
	return e.laneValid.Clone()
}

// Err returns the first divergence recorded by the shadow reducer.
// It is always nil when CheckReduction is off.
func (e *Engine) Err() error {
	if e.checked == nil {
		return nil
	}
	return e.checked.Err()
}

// LoadCoeff writes v to addr over port A.
// Returns ErrBusy while an operation is running.
func (e *Engine) LoadCoeff(addr int, v uint64) error {
	if e.Busy() {
		return ErrBusy
	}
	if v >= e.params.Q() {
		return fmt.Errorf("hwsim: coefficient %d out of range for modulus %d", v, e.params.Q())
	}
	if err := e.ram.Write(PortA, addr, v); err != nil {
		return err
	}

	if e.state == stateDone {
		e.state = stateIdle
	}
	return nil
}

// LoadAll writes all N coefficients over port A.
// Returns ErrBusy while an operation is running.
func (e *Engine) LoadAll(coeffs []uint64) error {
	if e.Busy() {
		return ErrBusy
	}
	if len(coeffs) != e.ram.Depth() {
		return fmt.Errorf("hwsim: vector length %d does not match depth %d", len(coeffs), e.ram.Depth())
	}
	for _, v := range coeffs {
		if v >= e.params.Q() {
			return fmt.Errorf("hwsim: coefficient %d out of range for modulus %d", v, e.params.Q())
		}
	}

	for addr, v := range coeffs {
		e.ram.Write(PortA, addr, v)
	}

	if e.state == stateDone {
		e.state = stateIdle
	}
	return nil
}

// ReadCoeff reads the word at addr over port B. The RAM is live state,
// so reads are legal at any time, including mid-transform.
func (e *Engine) ReadCoeff(addr int) (uint64, error) {
	return e.ram.Read(PortB, addr)
}

// ReadAll returns a copy of all N coefficients.
func (e *Engine) ReadAll() []uint64 {
	coeffs := make([]uint64, e.ram.Depth())
	copy(coeffs, e.ram.words)
	return coeffs
}

// Start arms the engine for a transform over the current RAM contents.
// While busy the pulse is ignored and ErrReentrantStart is returned.
// Starting from the done state is legal.
func (e *Engine) Start(dir Direction) error {
	if e.Busy() {
		return ErrReentrantStart
	}

	e.state = stateCompute
	e.dir = dir
	e.stage = 0
	e.stageCycle = 0
	e.scaleCycle = 0
	e.cycles = 0

	return nil
}

// PointwiseMultiply arms the engine to multiply the RAM elementwise by
// other over the next ScaleCycles cycles.
// Returns ErrBusy while an operation is running.
func (e *Engine) PointwiseMultiply(other []uint64) error {
	if e.Busy() {
		return ErrBusy
	}
	if len(other) != e.ram.Depth() {
		return fmt.Errorf("hwsim: vector length %d does not match depth %d", len(other), e.ram.Depth())
	}
	for _, v := range other {
		if v >= e.params.Q() {
			return fmt.Errorf("hwsim: coefficient %d out of range for modulus %d", v, e.params.Q())
		}
	}

	for i, v := range other {
		e.multOperand[i] = e.reducer.PrepConst(v)
	}

	e.state = stateMult
	e.scaleCycle = 0
	e.cycles = 0

	return nil
}

// Step advances the engine by one clock cycle.
func (e *Engine) Step() {
	switch e.state {
	case stateCompute:
		e.stepCompute()
	case stateScale:
		e.stepScale()
	case stateMult:
		e.stepMult()
	}
}

// StepN advances the engine by n clock cycles.
func (e *Engine) StepN(n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}

// Run steps the engine until the running operation completes, and returns
// the consumed cycles together with any divergence recorded by the shadow
// reducer.
func (e *Engine) Run() (int, error) {
	for e.Busy() {
		e.Step()
	}
	return e.cycles, e.Err()
}

// stepCompute executes one butterfly cycle. Lane p handles the butterfly
// with in-stage index stageCycle*Parallel+p and is masked off when that
// index does not exist.
func (e *Engine) stepCompute() {
	n := e.params.N()
	half := n / 2

	var m, t int
	if e.dir == Forward {
		m = 1 << e.stage
		t = n >> (e.stage + 1)
	} else {
		t = 1 << e.stage
		m = n >> (e.stage + 1)
	}

	e.laneValid.ClearAll()
	nw := 0
	for p := 0; p < e.parallel; p++ {
		b := e.stageCycle*e.parallel + p
		if b >= half {
			break
		}
		e.laneValid.Set(uint(p))

		i := b / t
		j := 2*i*t + b%t

		u := e.ram.words[j]
		v := e.ram.words[j+t]

		var x, y uint64
		if e.dir == Forward {
			x, y = e.butterfly.CT(u, v, e.rom.ReadFwd(m+i))
		} else {
			x, y = e.butterfly.GS(u, v, e.rom.ReadInv(m+i))
		}

		e.wrAddr[nw], e.wrData[nw] = j, x
		e.wrAddr[nw+1], e.wrData[nw+1] = j+t, y
		nw += 2
	}
	for k := 0; k < nw; k++ {
		e.ram.words[e.wrAddr[k]] = e.wrData[k]
	}

	e.cycles++
	e.stageCycle++
	if e.stageCycle == e.cyclesPerStage {
		e.stageCycle = 0
		e.stage++
		if e.stage == e.params.LogN() {
			if e.dir == Forward {
				e.state = stateDone
			} else {
				e.state = stateScale
			}
		}
	}
}

// stepScale executes one normalization cycle of the inverse transform.
func (e *Engine) stepScale() {
	e.laneValid.ClearAll()
	for p := 0; p < e.parallel; p++ {
		addr := e.scaleCycle*e.parallel + p
		if addr >= e.params.N() {
			break
		}
		e.laneValid.Set(uint(p))

		e.ram.words[addr] = e.reducer.MulConst(e.ram.words[addr], e.rom.ReadScale())
	}

	e.cycles++
	e.scaleCycle++
	if e.scaleCycle == e.scaleCycles {
		e.state = stateDone
	}
}

// stepMult executes one pointwise multiplication cycle.
func (e *Engine) stepMult() {
	e.laneValid.ClearAll()
	for p := 0; p < e.parallel; p++ {
		addr := e.scaleCycle*e.parallel + p
		if addr >= e.params.N() {
			break
		}
		e.laneValid.Set(uint(p))

		e.ram.words[addr] = e.reducer.MulConst(e.ram.words[addr], e.multOperand[addr])
	}

	e.cycles++
	e.scaleCycle++
	if e.scaleCycle == e.scaleCycles {
		e.state = stateDone
	}
}
