package errcode

// Code is a stable error identifier for peripheral operations.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Parameter validation (rejected before any hardware mutation).
	InvalidParams Code = "invalid_params"

	// State-machine preconditions (rejected with zero side effects).
	NotActive     Code = "not_active"
	NotCalibrated Code = "not_calibrated"
	NotSampling   Code = "not_sampling"
	Sampling      Code = "sampling"
	NoDevice      Code = "no_device"
	Unsupported   Code = "unsupported"

	// Hardware polling never observed the expected flag. The device
	// record may be left partially transitioned; the peripheral should
	// be treated as suspect.
	Timeout Code = "timeout"

	// Dependency services reported failure.
	ClockGate Code = "clock_gate"
	PortGate  Code = "port_gate"
	PinClaim  Code = "pin_claim"

	Error Code = "error" // generic fallback
)

// E wraps a Code with operation context and an optional cause.
type E struct {
	C   Code
	Op  string
	Err error
}

func (e *E) Error() string {
	if e.Op != "" {
		return e.Op + ": " + string(e.C)
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches operation context and a cause to a code.
func Wrap(c Code, op string, err error) error {
	return &E{C: c, Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
