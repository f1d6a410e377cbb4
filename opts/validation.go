package opts

// Validater is the interface that wraps the Validate method.
//
// Validate takes a Request and performs validation on it. If the Request
// is not valid an InvalidError is returned.
type Validater interface {
	Validate(*Request) error
}

type validFunc func(*Request) error

// ValidationSet is a collection of validation functions.
type ValidationSet []validFunc

// Validate implements Validater.
func (v *ValidationSet) Validate(req *Request) error {
	for _, f := range *v {
		if err := f(req); err != nil {
			return err
		}
	}

	return nil
}

// RequestValidation is a Validater for all fields of a Request.
func RequestValidation() *ValidationSet {
	return &ValidationSet{
		checkBDF,
		checkBar,
		checkOperation,
		checkCount,
	}
}

func checkBDF(req *Request) error {
	if req.BDF == "" {
		return ErrMissingBDF
	}

	if len(req.BDF) > MaxBDFLen {
		return ErrBDFTooLong
	}

	return nil
}

func checkBar(req *Request) error {
	if req.Bar < 0 || req.Bar >= MaxBars {
		return ErrBarIndex
	}

	return nil
}

func checkOperation(req *Request) error {
	if req.Operation != OpRead && req.Operation != OpWrite {
		return ErrMissingOperation
	}

	return nil
}

func checkCount(req *Request) error {
	if req.Operation != OpRead {
		return nil
	}

	if req.Count == 0 {
		return ErrCountZero
	}

	if req.Count > MaxCount {
		return ErrCountTooLarge
	}

	return nil
}
