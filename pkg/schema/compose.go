package schema

// AndSchema is a sequential pipeline. See And.
type AndSchema struct {
	stages []Schema
}

// And threads the value returned by each stage into the next one.
// Every stage runs, even after a failure, and all errors are kept in order.
func And(stages ...Schema) *AndSchema {
	return &AndSchema{stages: stages}
}

func (s *AndSchema) Kind() Kind { return KindAnd }

func (s *AndSchema) Parse(data any) (any, []error) {
	var errs []error
	v := data
	for _, stage := range s.stages {
		var stageErrs []error
		v, stageErrs = stage.Parse(v)
		errs = append(errs, stageErrs...)
	}
	return v, errs
}

// OrSchema is an ordered alternation. See Or.
type OrSchema struct {
	alternatives []Schema
}

// Or tries each alternative against the original input and returns the first
// one that produces no errors. When all fail, only the last alternative's
// value and errors are returned.
func Or(alternatives ...Schema) *OrSchema {
	return &OrSchema{alternatives: alternatives}
}

func (s *OrSchema) Kind() Kind { return KindOr }

func (s *OrSchema) Parse(data any) (any, []error) {
	v, errs := data, []error(nil)
	for _, alt := range s.alternatives {
		v, errs = alt.Parse(data)
		if len(errs) == 0 {
			return v, nil
		}
	}
	return v, errs
}
