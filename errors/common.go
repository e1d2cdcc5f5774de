package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

// InvalidBodyErr is returned for a body that is not a JSON object. The
// decoder's own text is kept out of it since it names Go types.
func InvalidBodyErr() error {
	return E(Invalid, "request body must be a valid JSON object", nil)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// NotFoundErr returns a formatted error for a missing entity
func NotFoundErr(entity string, id any) error {
	return E(NotExist, fmt.Sprintf("%s %v not found", entity, id), nil)
}

// TransitionErr returns a formatted error for a rejected status change
func TransitionErr(id int64, from, to string) error {
	return E(InvalidTransition, fmt.Sprintf("transaction %d cannot move from %s to %s", id, from, to), nil)
}

func StoreErr(op string, err error) error {
	return E(Store, op, err)
}

func PublishErr(topic string, err error) error {
	return E(Publish, fmt.Sprintf("publish to %s failed", topic), err)
}

func DecodeErr(topic string, err error) error {
	return E(Decode, fmt.Sprintf("cannot decode record from %s", topic), err)
}
