package templates

import "strconv"

// idValue is the input value for an id, blank when the id is unset
func idValue(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
