package service

import (
	"datacleaner/pkg/config"
	"datacleaner/pkg/sanitizer"
)

// Options carries the per-run cleaning parameters.
type Options struct {
	AgeRange           sanitizer.Range
	QuantityRange      sanitizer.Range
	OrderDateFixedYear int

	Workers   int
	ChunkSize int
}

func DefaultOptions() Options {
	return Options{
		AgeRange:           sanitizer.DefaultAgeRange,
		QuantityRange:      sanitizer.DefaultQuantityRange,
		OrderDateFixedYear: config.DefaultOrderDateFixedYear,
		Workers:            config.DefaultWorkers,
		ChunkSize:          config.DefaultChunkSize,
	}
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AgeRange:           cfg.AgeRange(),
		QuantityRange:      cfg.QuantityRange(),
		OrderDateFixedYear: cfg.OrderDateFixedYear,
		Workers:            cfg.Workers,
		ChunkSize:          cfg.ChunkSize,
	}
}

// Rule derives Field from the raw Column. Normalize returns the cleaned value,
// nil when the raw value is invalid.
type Rule struct {
	Column    string
	Field     string
	Normalize func(raw any, opts Options) (any, bool)
}

func outcome[T any](r sanitizer.Result[T]) (any, bool) {
	return r.Any(), r.IsValid()
}

var DefaultRules = []Rule{
	{
		Column: "Gender",
		Field:  "Gender_cleaned",
		Normalize: func(raw any, _ Options) (any, bool) {
			return outcome(sanitizer.NormalizeGender(raw))
		},
	},
	{
		Column: "Age",
		Field:  "Age_cleaned",
		Normalize: func(raw any, opts Options) (any, bool) {
			return outcome(sanitizer.NormalizeAge(raw, opts.AgeRange))
		},
	},
	{
		Column: "DOB",
		Field:  "DOB_cleaned",
		Normalize: func(raw any, _ Options) (any, bool) {
			return outcome(sanitizer.NormalizeDate(raw))
		},
	},
	{
		Column: "Delivery Date",
		Field:  "Delivery Date_cleaned",
		Normalize: func(raw any, _ Options) (any, bool) {
			return outcome(sanitizer.NormalizeDate(raw))
		},
	},
	{
		Column: "Signup Date",
		Field:  "Signup Date_cleaned",
		Normalize: func(raw any, _ Options) (any, bool) {
			return outcome(sanitizer.NormalizeDate(raw))
		},
	},
	{
		Column: "Order Date",
		Field:  "Order Date_cleaned",
		Normalize: func(raw any, opts Options) (any, bool) {
			return outcome(sanitizer.NormalizeDateFixedYear(raw, opts.OrderDateFixedYear))
		},
	},
	{
		Column: "Quantity Ordered",
		Field:  "Quantity_Ordered_cleaned",
		Normalize: func(raw any, opts Options) (any, bool) {
			return outcome(sanitizer.NormalizeQuantity(raw, opts.QuantityRange))
		},
	},
}
