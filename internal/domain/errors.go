package domain

import "errors"

// TransmissionMessage is shown to the user for any failed prediction exchange.
const TransmissionMessage = "An error occurred while fetching the prediction. Please try again."

// TransmissionError wraps a network, status or decoding failure of the
// prediction exchange. It is never retried.
type TransmissionError struct {
	Err error
}

func (e *TransmissionError) Error() string {
	return "prediction request failed: " + e.Err.Error()
}

func (e *TransmissionError) Unwrap() error { return e.Err }

// IsTransmission reports whether err is, or wraps, a TransmissionError.
func IsTransmission(err error) bool {
	var te *TransmissionError
	return errors.As(err, &te)
}
