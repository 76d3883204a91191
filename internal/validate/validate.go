package validate

import (
	"reflect"
	"strings"
)

// Validate that the values in the Request struct are valid according to the
// validation rules defined on the struct.
// If validation fails the error will be of type Error.
//
// Validate automatically traverses the fields on the struct. If any of the
// fields are of a type that implement Request, the validation rules of that
// field will be used as well.
func Validate(req Request) error {
	reqV := reflect.Indirect(reflect.ValueOf(req))
	err := validateStruct(reqV)
	if len(err) > 0 {
		return err
	}
	return nil
}

func validateStruct(v reflect.Value) Error {
	err := make(Error)

	req, ok := v.Interface().(Request)
	if ok && (v.Kind() != reflect.Pointer || !v.IsNil()) {
		for _, rule := range req.ValidationRules() {
			if failure := rule.Validate(); failure != nil {
				err[failure.Name] = append(err[failure.Name], failure.Problems...)
			}
		}
	}

	switch v.Kind() { // nolint:exhaustive
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if v.Type().Field(i).Anonymous {
				// validate the embedded struct
				for k, v := range validateStruct(f) {
					err[k] = append(err[k], v...)
				}
				continue
			}
			name := fieldName(v.Type().Field(i))
			for k, v := range validateStruct(f) {
				n := name
				if k != "" {
					n = name + "." + k
				}
				err[n] = append(err[n], v...)
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			for k, v := range validateStruct(v.Index(i)) {
				err[k] = append(err[k], v...)
			}
		}
	}
	return err
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" {
		return name
	}
	return f.Name
}

// ValidationRule performs validation on one or more struct fields.
//
// Validation rules should all default to optional. If the field has a zero
// value then the validation rule will do nothing. Use Required to make
// something a required field.
type ValidationRule interface {
	// Validate should return nil if the validation passes. If the validation
	// fails the Failure should contain the name of the field and the list of
	// problems.
	Validate() *Failure
}

// Failure describes a validation failure.
type Failure struct {
	// Name of the field. The name should be the user visible name as it
	// appears in the request body, not the name of the struct field.
	Name string
	// Problems is a list of messages that describe the validation failure.
	// They will be part of the API response.
	Problems []string
}

// Request is implemented by all request structs.
type Request interface {
	ValidationRules() []ValidationRule
}

// Error is a map of field names to errors associated with those fields.
// Errors that are associated with the struct or multiple fields will have a
// key of "".
type Error map[string][]string

func (e Error) Error() string {
	var buf strings.Builder
	buf.WriteString("validation failed: ")
	i := 0
	for k, v := range e {
		if i != 0 {
			buf.WriteString(", ")
		}
		i++
		if k == "" {
			buf.WriteString(strings.Join(v, ", "))
			continue
		}
		buf.WriteString(k + ": " + strings.Join(v, ", "))
	}
	return buf.String()
}

func fail(name string, problems ...string) *Failure {
	return &Failure{Name: name, Problems: problems}
}

type requiredRule struct {
	name  string
	value any
}

// Required checks that the value does not have a zero value.
// Zero values are nil, "", 0, false, empty map, empty slice, or the zero
// value of a struct. Name is the name of the field as visible to the user,
// often the json field name.
func Required(name string, value any) ValidationRule {
	return requiredRule{name: name, value: value}
}

func (r requiredRule) Validate() *Failure {
	if !reflect.ValueOf(r.value).IsZero() {
		return nil
	}
	return fail(r.name, "is required")
}
