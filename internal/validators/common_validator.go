package validators

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

func (e ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(e))
	for _, err := range e {
		result[err.Field] = err.Message
	}
	return result
}
