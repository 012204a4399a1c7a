package appointments

import "errors"

var (
	ErrBuildQuery = errors.New("error building query")
	ErrExecQuery  = errors.New("error executing query")
	ErrScanRow    = errors.New("error scanning row")
)
