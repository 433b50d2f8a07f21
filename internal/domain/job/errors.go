package job

import "errors"

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrJobCodeExists    = errors.New("job code already exists in this company")
	ErrTierNotFound     = errors.New("wage tier not found")
	ErrTierCodeExists   = errors.New("wage tier code already exists in this company")
	ErrWageRateNotFound = errors.New("wage rate not found for job and tier")
)
