package repository

// DBError wraps a failure raised by the database engine so the response
// layer can distinguish persistence failures from everything else. The
// underlying error keeps the engine's diagnostic text for constraint
// parsing.
type DBError struct {
	Op  string
	Err error
}

func (e *DBError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DBError) Unwrap() error {
	return e.Err
}

func wrapDB(op string, err error) *DBError {
	return &DBError{Op: op, Err: err}
}
