package exception

// is matches a String target by type only, and any other Exception target by
// type and message.
func is(source Exception, target error) bool {
	switch err := target.(type) {
	case String:
		return source.GetType() == string(err)
	case Exception:
		return source.GetType() == err.GetType() && source.GetMessage() == err.GetMessage()
	}
	return false
}

func as(source Exception, target any) bool {
	if err, ok := target.(*Exception); ok {
		*err = source
		return true
	}
	return false
}

// concat appends the non-nil errors to result, flattening joined errors.
func concat(result []error, errors ...error) []error {
	for _, err := range errors {
		if err == nil {
			continue
		}
		if multiple, ok := err.(multipleErrors); ok {
			result = concat(result, multiple...)
		} else {
			result = append(result, err)
		}
	}
	return result
}
